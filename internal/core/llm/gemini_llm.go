package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/ksjang99-lgtm/langchain-rag/internal/core"
)

type GeminiLLM struct {
	client    *genai.Client
	modelName string
}

func NewGeminiLLM(ctx context.Context, apiKey, modelName string) (*GeminiLLM, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &GeminiLLM{client: cl, modelName: modelName}, nil
}

func (g *GeminiLLM) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func (g *GeminiLLM) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m := g.client.GenerativeModel(g.modelName)
	if systemPrompt != "" {
		m.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemPrompt)},
		}
	}

	resp, err := m.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	return collectText(resp), nil
}

// ocrPrompt asks for the visible text only, with vertically stacked
// characters rebuilt into horizontal sentences.
const ocrPrompt = "이 이미지에서 보이는 모든 텍스트를 추출하되, " +
	"세로로 배치된 글자들은 사람이 읽기 쉬운 가로 문장으로 재구성해줘. " +
	"의미 없는 한 글자씩의 줄바꿈은 제거하고, " +
	"자연스러운 문장 단위로 공백을 사용해 표현해줘. " +
	"추가 설명 없이 결과 텍스트만 출력해."

// ExtractImageText runs OCR over an equipment-screen photo. mime is the
// uploaded content type, e.g. "image/png".
func (g *GeminiLLM) ExtractImageText(ctx context.Context, imageBytes []byte, mime string) (string, error) {
	format := "png"
	if i := strings.IndexByte(mime, '/'); i >= 0 && i+1 < len(mime) {
		format = mime[i+1:]
	}

	m := g.client.GenerativeModel(g.modelName)
	resp, err := m.GenerateContent(ctx, genai.Text(ocrPrompt), genai.ImageData(format, imageBytes))
	if err != nil {
		return "", fmt.Errorf("gemini ocr: %w", err)
	}
	return strings.TrimSpace(collectText(resp)), nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}

var _ core.LLMProvider = (*GeminiLLM)(nil)
var _ core.ImageTextExtractor = (*GeminiLLM)(nil)
