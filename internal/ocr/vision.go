package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	vision "google.golang.org/api/vision/v1"
)

// Feature types requested for every receipt image.
const (
	featureText  = "TEXT_DETECTION"
	featureLogo  = "LOGO_DETECTION"
	featureLabel = "LABEL_DETECTION"

	maxLabelResults = 5
)

// Client wraps the Vision API for receipt annotation.
type Client struct {
	svc *vision.Service
}

// NewClient creates a Vision client using application default credentials.
func NewClient(ctx context.Context) (*Client, error) {
	svc, err := vision.NewService(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewClient: creating vision service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// AnnotateImage runs text, logo and label detection over one image and
// returns the OCR result.
func (c *Client) AnnotateImage(ctx context.Context, image []byte) (*Result, error) {
	resp, err := c.annotate(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("AnnotateImage: %w", err)
	}
	return fromResponse(resp), nil
}

// AnnotateImageRaw runs the same detection and returns the annotation JSON,
// the form stored in GCS next to each receipt image.
func (c *Client) AnnotateImageRaw(ctx context.Context, image []byte) ([]byte, error) {
	resp, err := c.annotate(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("AnnotateImageRaw: %w", err)
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("AnnotateImageRaw: marshaling annotation: %w", err)
	}
	return data, nil
}

func (c *Client) annotate(ctx context.Context, image []byte) (*vision.AnnotateImageResponse, error) {
	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{
			{
				Image: &vision.Image{Content: base64.StdEncoding.EncodeToString(image)},
				Features: []*vision.Feature{
					{Type: featureText},
					{Type: featureLogo},
					{Type: featureLabel, MaxResults: maxLabelResults},
				},
			},
		},
	}

	resp, err := c.svc.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("calling images.annotate: %w", err)
	}
	if len(resp.Responses) == 0 {
		return nil, fmt.Errorf("empty annotation batch")
	}
	first := resp.Responses[0]
	if first.Error != nil {
		return nil, fmt.Errorf("vision error: %s", first.Error.Message)
	}
	return first, nil
}
