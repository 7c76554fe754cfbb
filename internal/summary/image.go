package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
)

// GenerateCover produces a cover-style header illustration for a book and
// returns it as a data URL. Covers are never cached and never participate
// in the summary pipeline.
func (c *OpenAIClient) GenerateCover(ctx context.Context, title string, authors []string) (string, error) {
	byline := ""
	if len(authors) > 0 {
		byline = " by " + strings.Join(authors, ", ")
	}
	prompt := fmt.Sprintf(
		"Create a vertical 1024x1536 animated/illustrative book-cover-style header inspired by the tone and motifs of %q%s. "+
			"Use clean modern vector/illustration style, soft gradients, and symbolic imagery. "+
			"Avoid copying the exact copyrighted cover art, logos, or layout.",
		title, byline)

	result, err := c.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:  openai.ImageModel(c.cfg.ImageModel),
		Prompt: prompt,
		Size:   openai.ImageGenerateParamsSize1024x1536,
		N:      openai.Int(1),
	})
	if err != nil {
		return "", fmt.Errorf("image generation: %w", err)
	}
	if len(result.Data) == 0 || result.Data[0].B64JSON == "" {
		return "", errors.New("no image returned")
	}
	return "data:image/png;base64," + result.Data[0].B64JSON, nil
}
