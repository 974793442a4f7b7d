package models

import "fmt"

// Category 是问题所属主题的封闭枚举。
type Category string

const (
	CategoryAdmissions       Category = "Admissions"       // 招生。
	CategoryFees             Category = "Fees"             // 学费。
	CategoryAcademics        Category = "Academics"        // 学业成绩。
	CategoryAcademicAdvising Category = "Academic Advising" // 学业指导。
	CategoryITSystems        Category = "IT & Systems"     // IT 与系统。
	CategoryEmails           Category = "Emails"           // 邮箱。
	CategoryGeneral          Category = "General"          // 默认分类。
)

// Categories 返回所有分类，顺序固定。分类器的平分裁决依赖这个声明顺序。
func Categories() []Category {
	return []Category{
		CategoryAdmissions,
		CategoryFees,
		CategoryAcademics,
		CategoryAcademicAdvising,
		CategoryITSystems,
		CategoryEmails,
		CategoryGeneral,
	}
}

// IsValidCategory 检查给定的字符串是否是合法的分类。
func IsValidCategory(s string) bool {
	for _, c := range Categories() {
		if string(c) == s {
			return true
		}
	}
	return false
}

// QARecord 是知识库中的一条问答记录，在摄取时从静态数据集创建，之后不可变。
type QARecord struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
}

// CombinedText 返回用于嵌入和索引的组合文本。
func (r *QARecord) CombinedText() string {
	return fmt.Sprintf("Question: %s\nAnswer: %s", r.Question, r.Answer)
}

// Interaction 是会话记忆中的一轮问答。
type Interaction struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QueryLogEntry 是每个成功回答的问题写入持久化结果日志的记录。
type QueryLogEntry struct {
	Query     string   `json:"query"`
	Answer    string   `json:"answer"`
	Sources   []string `json:"sources"`
	Timestamp string   `json:"timestamp"`
}
