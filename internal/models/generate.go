package models

import "time"

// SpeakerRole 定义了消息发送者的角色。
type SpeakerRole string

const (
	SpeakerSystem    SpeakerRole = "system"    // 系统角色。
	SpeakerUser      SpeakerRole = "user"      // 用户角色。
	SpeakerAssistant SpeakerRole = "assistant" // 助手角色。
	SpeakerModel     SpeakerRole = "model"     // 模型角色。
)

// GenerateRequest 定义了生成回答的请求结构。
// History 中的交互按时间顺序（最早在前）展开为 user/assistant 交替消息，
// 再附加本次的 Prompt。
type GenerateRequest struct {
	System  string        `json:"system,omitempty"`  // 系统人设提示。
	Prompt  string        `json:"prompt"`            // 本次用户提示（含上下文）。
	History []Interaction `json:"history,omitempty"` // 会话历史，最早在前。
}

// GenerateResponse 定义了生成回答的响应结构。
type GenerateResponse struct {
	Text         string    `json:"text"`                   // 生成的回答文本。
	ModelVersion string    `json:"modelVersion,omitempty"` // 模型版本。
	CreateTime   time.Time `json:"createTime,omitempty"`   // 响应创建时间。
}
