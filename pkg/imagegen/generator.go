// Package imagegen produces test fixture images (product shots, avatars,
// banner placeholders) for QA scenarios that need realistic media uploads.
package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/entrhq/qapilot/pkg/config"
	"github.com/entrhq/qapilot/pkg/logging"
	"github.com/google/uuid"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultModel is the image model used when none is configured.
	DefaultModel = "gpt-image-1"

	// DefaultOutputDir receives generated files when none is configured.
	DefaultOutputDir = "generated_images"

	// maxWorkers caps concurrent generation requests regardless of
	// configuration, keeping API rate limits and memory in check.
	maxWorkers = 4
)

// Generator renders image prompts to PNG files with bounded concurrency.
type Generator struct {
	client    openai.Client
	model     string
	outputDir string
	workers   int
	logger    *logging.Logger

	// generate performs one rendering request; tests substitute it to
	// exercise the pool without network access.
	generate func(ctx context.Context, prompt string) ([]byte, error)
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithModel sets the image model to use.
func WithModel(model string) GeneratorOption {
	return func(g *Generator) {
		if model != "" {
			g.model = model
		}
	}
}

// WithOutputDir sets the directory generated files are written to.
func WithOutputDir(dir string) GeneratorOption {
	return func(g *Generator) {
		if dir != "" {
			g.outputDir = dir
		}
	}
}

// WithWorkers sets the concurrency bound, capped at maxWorkers.
func WithWorkers(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

// NewGenerator creates a generator. If apiKey is empty the
// OPENAI_API_KEY environment variable is used. Configuration supplies
// defaults for model, output directory, and worker count; options
// override both.
func NewGenerator(apiKey string, opts ...GeneratorOption) (*Generator, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required (provide via parameter or OPENAI_API_KEY environment variable)")
	}

	logger, _ := logging.NewLogger("imagegen")
	g := &Generator{
		client:    openai.NewClient(option.WithAPIKey(apiKey)),
		model:     DefaultModel,
		outputDir: DefaultOutputDir,
		workers:   maxWorkers,
		logger:    logger,
	}
	// Copy only set values so an unset section field keeps the package
	// default; GetOutputDir is empty out of the box.
	if cfg := config.GetGeneration(); cfg != nil {
		if model := cfg.GetModel(); model != "" {
			g.model = model
		}
		if dir := cfg.GetOutputDir(); dir != "" {
			g.outputDir = dir
		}
		if workers := cfg.GetMaxWorkers(); workers > 0 {
			g.workers = workers
		}
	}

	for _, opt := range opts {
		opt(g)
	}
	if g.workers > maxWorkers {
		g.workers = maxWorkers
	}
	g.generate = g.generateViaAPI

	return g, nil
}

// GenerateBatch renders every prompt concurrently, at most workers in
// flight, and returns the paths of the files that succeeded, in prompt
// order. A failed prompt is logged and omitted; it does not abort the
// batch.
func (g *Generator) GenerateBatch(ctx context.Context, prompts []string) ([]string, error) {
	if len(prompts) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(g.outputDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, len(prompts))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(g.workers)
	for i, prompt := range prompts {
		group.Go(func() error {
			path, err := g.generateOne(groupCtx, prompt)
			if err != nil {
				g.logger.Errorf("image generation failed for prompt %d: %v", i+1, err)
				return nil
			}
			paths[i] = path
			return nil
		})
	}
	// Workers never return errors; Wait only observes context cancellation.
	if err := group.Wait(); err != nil {
		return nil, err
	}

	succeeded := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != "" {
			succeeded = append(succeeded, p)
		}
	}
	return succeeded, nil
}

// generateOne renders a single prompt to a uniquely named PNG file.
func (g *Generator) generateOne(ctx context.Context, prompt string) (string, error) {
	data, err := g.generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	path := filepath.Join(g.outputDir, uuid.NewString()+".png")
	if err := os.WriteFile(path, data, 0640); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	g.logger.Infof("generated image %s (%d bytes)", path, len(data))
	return path, nil
}

// generateViaAPI requests one image from the API as base64 PNG data.
func (g *Generator) generateViaAPI(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := g.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModel(g.model),
		N:              openai.Int(1),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("image request failed: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, fmt.Errorf("image response contained no data")
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image data: %w", err)
	}
	return data, nil
}
