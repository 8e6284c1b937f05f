package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// --- Structures for the hosted inference API response ---

// LabelConfidence is one entry of the model's per-class confidence list.
type LabelConfidence struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Prediction is a single classification result from the model.
type Prediction struct {
	Label       string            `json:"label"`
	Confidences []LabelConfidence `json:"confidences"`
}

// predictResponse is the envelope the hosted endpoint wraps results in.
type predictResponse struct {
	Data []Prediction `json:"data"`
}

var ErrInvalidModelResponse = errors.New("invalid response format from model")

// InferenceClient forwards crop images to the hosted disease model.
type InferenceClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewInferenceClient(baseURL string) *InferenceClient {
	return &InferenceClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Predict uploads the image bytes to the model endpoint and returns the
// top prediction with its confidence breakdown.
func (ic *InferenceClient) Predict(ctx context.Context, filename string, image []byte) (*Prediction, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("img", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload body: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("failed to build upload body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, ic.BaseURL, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create inference request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	httpResp, err := ic.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to reach inference service: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read inference response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference service returned status %d", httpResp.StatusCode)
	}

	var resp predictResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, ErrInvalidModelResponse
	}
	if len(resp.Data) == 0 || resp.Data[0].Confidences == nil {
		return nil, ErrInvalidModelResponse
	}

	return &resp.Data[0], nil
}

// ConfidencePercent formats the confidence of the predicted label as a
// percentage with two decimals, or "N/A" when the label is missing from
// the confidence list.
func (p *Prediction) ConfidencePercent() string {
	for _, c := range p.Confidences {
		if c.Label == p.Label {
			return fmt.Sprintf("%.2f", c.Confidence*100)
		}
	}
	return "N/A"
}

// recommendationsMap keys the known rice disease labels to advice lists.
var recommendationsMap = map[string][]string{
	"Blast":     {"Use fungicide", "Reduce nitrogen usage", "Improve drainage"},
	"Brownspot": {"Apply balanced fertilizer", "Ensure clean seed stock"},
	"Leafsmut":  {"Improve air circulation", "Apply copper-based fungicide"},
}

// RecommendationsFor returns the advice list for a disease label, with
// a generic fallback for labels the table does not know.
func RecommendationsFor(disease string) []string {
	if recs, ok := recommendationsMap[disease]; ok {
		return recs
	}
	return []string{"Monitor closely", "Consult agronomist"}
}
