package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"AdmissionOfficer/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini 是一个实现了 LLM 接口的结构体，用于与 Gemini API 交互。
type Gemini struct {
	client *genai.Client // GenAI 客户端实例。
	model  string        // 要使用的 Gemini 模型名称。
}

// NewGemini 创建一个新的 Gemini 客户端。
//
// 参数:
//
//	ctx: 上下文，用于控制客户端的生命周期。
//	model: 要使用的 Gemini 模型名称。
//	apiKey: Gemini API 密钥。
//
// 返回值:
//
//	*Gemini: 新创建的 Gemini 客户端实例。
//	error: 如果无法创建 GenAI 客户端，则返回错误。
func NewGemini(ctx context.Context, model, apiKey string) (*Gemini, error) {
	// 使用 API 密钥创建 GenAI 客户端。
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &Gemini{client: client, model: model}, nil
}

// GenerateContent 向 Gemini API 发送请求并返回响应。
// 每次请求创建独立的聊天会话，系统人设与会话历史按请求注入，避免共享可变状态。
func (g *Gemini) GenerateContent(ctx context.Context, req *models.GenerateRequest) (*models.GenerateResponse, error) {
	generativeModel := g.client.GenerativeModel(g.model)
	if req.System != "" {
		generativeModel.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}

	chatSession := generativeModel.StartChat()
	chatSession.History = toGenaiHistory(req.History)

	resp, err := chatSession.SendMessage(ctx, genai.Text(req.Prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to send message to gemini: %w", err)
	}

	text, err := fromGenaiResponse(resp)
	if err != nil {
		return nil, err
	}

	return &models.GenerateResponse{
		Text:         text,
		ModelVersion: g.model,
		CreateTime:   time.Now(),
	}, nil
}

// toGenaiHistory 将内部会话历史转换为 GenAI 聊天历史（user/model 交替）。
func toGenaiHistory(history []models.Interaction) []*genai.Content {
	contents := make([]*genai.Content, 0, 2*len(history))
	for _, interaction := range history {
		contents = append(contents,
			&genai.Content{Role: string(models.SpeakerUser), Parts: []genai.Part{genai.Text(interaction.Question)}},
			&genai.Content{Role: string(models.SpeakerModel), Parts: []genai.Part{genai.Text(interaction.Answer)}},
		)
	}
	return contents
}

// fromGenaiResponse 提取 GenAI 响应中第一个候选的文本内容。
func fromGenaiResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}
