package generate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/ByLCY/coverstudio/book"
	"github.com/ByLCY/coverstudio/logging"
)

// DefaultModel 是默认的图像模型。
const DefaultModel = "gemini-2.5-flash-image"

// contentGenerator 是 *genai.Models 中用到的部分。
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini 通过 Gemini API 生成封面背景。
type Gemini struct {
	models   contentGenerator
	Model    string
	Attempts int
	Backoff  time.Duration
}

var _ Generator = (*Gemini)(nil)

// NewGemini 用 API key 创建客户端。
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("缺少 API key")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("创建 Gemini 客户端失败: %w", err)
	}
	return newGemini(client.Models, model), nil
}

func newGemini(models contentGenerator, model string) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{models: models, Model: model, Attempts: 3, Backoff: time.Second}
}

// Generate 发送提示词与至多两张参考图，返回第一张内联图像。
func (g *Gemini) Generate(ctx context.Context, cfg book.Config, refs []Reference) (Result, error) {
	var images []*genai.Part
	if !IgnoresCharacters(cfg.DesignLayout) {
		for i, ref := range refs {
			if len(images) == MaxReferences {
				break
			}
			prepared, err := PrepareReference(ref.Data)
			if err != nil {
				logging.L().Warn("跳过无法处理的参考图", "index", i, "err", err)
				continue
			}
			images = append(images, genai.NewPartFromBytes(prepared.Data, prepared.MIMEType))
		}
	}

	prompt := BuildPrompt(cfg, len(images))
	parts := append([]*genai.Part{genai.NewPartFromText(prompt)}, images...)
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	config := &genai.GenerateContentConfig{ResponseModalities: []string{"IMAGE", "TEXT"}}

	url, err := retry(ctx, g.Attempts, g.Backoff, func(ctx context.Context) (string, error) {
		resp, err := g.models.GenerateContent(ctx, g.Model, contents, config)
		if err != nil {
			return "", err
		}
		return firstImage(resp)
	})
	if err != nil {
		return Result{}, fmt.Errorf("生成封面失败: %w", err)
	}
	return Result{ImageURL: url, PromptUsed: prompt}, nil
}

func firstImage(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrNoImage
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return DataURI(part.InlineData.MIMEType, part.InlineData.Data), nil
		}
	}
	return "", ErrNoImage
}
