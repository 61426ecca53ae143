// File: services/extraction/geminiClient.go
package extraction

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"flavortable/models"
	"flavortable/utils"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// fallbackModel is used when model discovery fails outright.
const fallbackModel = "models/gemini-1.5-flash"

// GeminiExtractor talks to the Gemini API and resolves a working model by
// listing what the key can actually use, preferring flash over pro. The
// resolved name is memoized and invalidated when a generate call fails, so a
// deprecated model gets re-discovered on the next turn.
type GeminiExtractor struct {
	client         *genai.Client
	restaurantName string

	mu          sync.Mutex
	cachedModel string
}

func NewGeminiExtractor(apiKey, restaurantName string) (*GeminiExtractor, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(strings.TrimSpace(apiKey)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiExtractor{
		client:         client,
		restaurantName: restaurantName,
	}, nil
}

func (g *GeminiExtractor) ProcessTurn(ctx context.Context, history []models.ConversationTurn, userText string) (*models.ExtractionResult, error) {
	logger := utils.GetLogger()

	modelName := g.workingModel(ctx)
	model := g.client.GenerativeModel(modelName)

	prompt := BuildPrompt(g.restaurantName, history, userText)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		// The cached model may have been retired; re-discover next turn.
		g.invalidateModel()
		logger.Warn("gemini generate failed", zap.String("model", modelName), zap.Error(err))
		return nil, fmt.Errorf("%w: generate: %v", ErrUnavailable, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: empty candidate set", ErrUnavailable)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}

	result, err := ParseExtraction(sb.String())
	if err != nil {
		logger.Warn("gemini response did not parse", zap.Error(err))
		return nil, err
	}
	return result, nil
}

// workingModel returns the memoized model name, running discovery if needed.
func (g *GeminiExtractor) workingModel(ctx context.Context) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cachedModel != "" {
		return g.cachedModel
	}

	logger := utils.GetLogger()
	selected := g.discoverModel(ctx)
	if selected == "" {
		logger.Warn("model discovery found nothing usable, using fallback",
			zap.String("fallback", fallbackModel))
		return fallbackModel
	}

	g.cachedModel = selected
	logger.Info("auto-selected Gemini model", zap.String("model", selected))
	return selected
}

// invalidateModel drops the memoized model name.
func (g *GeminiExtractor) invalidateModel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cachedModel = ""
}

// discoverModel lists models available to this key and picks by preference:
// 1.5-flash, then gemini-pro, then anything that supports generateContent.
func (g *GeminiExtractor) discoverModel(ctx context.Context) string {
	var flash, pro, anyGen string

	it := g.client.ListModels(ctx)
	for {
		m, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			utils.GetLogger().Warn("model discovery failed", zap.Error(err))
			return ""
		}
		if !supportsGenerate(m) {
			continue
		}
		switch {
		case strings.Contains(m.Name, "gemini-1.5-flash") && flash == "":
			flash = m.Name
		case strings.Contains(m.Name, "gemini-pro") && pro == "":
			pro = m.Name
		case anyGen == "":
			anyGen = m.Name
		}
	}

	if flash != "" {
		return flash
	}
	if pro != "" {
		return pro
	}
	return anyGen
}

func supportsGenerate(m *genai.ModelInfo) bool {
	for _, method := range m.SupportedGenerationMethods {
		if method == "generateContent" {
			return true
		}
	}
	return false
}
