package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"AdmissionOfficer/internal/embedding"
	"AdmissionOfficer/internal/llm"
	"AdmissionOfficer/internal/models"
	"AdmissionOfficer/internal/qa_service/rag/classifier"
	"AdmissionOfficer/internal/qa_service/rag/interfaces"
	"AdmissionOfficer/internal/qa_service/rag/memory"
	"AdmissionOfficer/internal/qa_service/rag/schema"
	"AdmissionOfficer/pkg/logger"
)

// systemPersona is the fixed system instruction for the admissions assistant.
const systemPersona = `You are an AI admissions officer at Nile University. Your role is to provide accurate, friendly, and helpful guidance to prospective students.
Answer questions about programs, courses, application deadlines, admission requirements, scholarships, and campus life.
Guide students step-by-step through the application process when needed.
Clarify university policies politely and professionally.
Adapt your tone to be friendly, encouraging, and approachable while maintaining professionalism.
Ask follow-up questions to better understand the student's needs before giving detailed advice.
Avoid giving inaccurate or vague information; if you don't know the answer, direct the student to official resources.
Use the conversation history to provide contextual and coherent responses that reference previous interactions when relevant.
Do not include any internal metadata (IDs, file names, chunk indices, or bracketed tags) in your final answer.`

// fallbackTopK bounds the keyword fallback; it is deliberately smaller than the
// vector topK because overlap scores discriminate poorly beyond the first hits.
const defaultFallbackTopK = 3

// Request carries one question through the pipeline.
type Request struct {
	SessionID string
	Question  string
	// Category, when non-empty, is used as the retrieval filter instead of
	// running the classifier.
	Category models.Category
	// UseMemory controls the conversation memory: when false the generator
	// sees no history and the interaction is not recorded.
	UseMemory bool
}

// Answer is the outcome of one pipeline run.
type Answer struct {
	Text       string          `json:"answer"`
	Category   models.Category `json:"category,omitempty"`
	Sources    []string        `json:"sources"`
	Timestamp  string          `json:"timestamp"`
	MemorySize int             `json:"memory_size"`
	Fallback   bool            `json:"used_fallback"`
}

// Options tunes the retrieval stage of an AnswerPipeline.
type Options struct {
	TopK         int
	FallbackTopK int
}

// AnswerPipeline runs the retrieval-augmented answering flow: classify the
// question, retrieve supporting records, assemble the context, generate an
// answer with the session history, then record the interaction. All
// collaborators are injected so tests can run the pipeline without any
// external service.
type AnswerPipeline struct {
	embedder     embedding.Embedding
	vectors      interfaces.VectorStore
	keywords     interfaces.KeywordSearcher
	generator    llm.LLM
	sessions     memory.Store
	queryLog     interfaces.QueryLog
	log          *logger.Logger
	topK         int
	fallbackTopK int
}

// NewAnswerPipeline wires an answering pipeline from its collaborators.
// queryLog may be nil when query logging is disabled.
func NewAnswerPipeline(
	embedder embedding.Embedding,
	vectors interfaces.VectorStore,
	keywords interfaces.KeywordSearcher,
	generator llm.LLM,
	sessions memory.Store,
	queryLog interfaces.QueryLog,
	opts Options,
	log *logger.Logger,
) *AnswerPipeline {
	topK := opts.TopK
	if topK <= 0 {
		topK = 5
	}
	fallbackTopK := opts.FallbackTopK
	if fallbackTopK <= 0 {
		fallbackTopK = defaultFallbackTopK
	}
	return &AnswerPipeline{
		embedder:     embedder,
		vectors:      vectors,
		keywords:     keywords,
		generator:    generator,
		sessions:     sessions,
		queryLog:     queryLog,
		log:          log,
		topK:         topK,
		fallbackTopK: fallbackTopK,
	}
}

// Run answers one question within the given session.
func (p *AnswerPipeline) Run(ctx context.Context, req Request) (*Answer, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	// A caller-supplied category wins over the classifier.
	category, detected := req.Category, req.Category != ""
	if !detected {
		category, detected = classifier.Detect(question)
		if detected {
			p.log.Info(fmt.Sprintf("Detected category: %s", category))
		}
	}

	docs, usedFallback := p.retrieve(ctx, question, category, detected)
	if len(docs) == 0 {
		return nil, ErrNoEvidence
	}

	var history []models.Interaction
	if req.UseMemory {
		var err error
		history, err = p.sessions.History(ctx, req.SessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load session history: %w", err)
		}
	}

	contextBlock := FormatContext(docs)
	prompt := fmt.Sprintf("Use the following context to answer the question.\n\nCONTEXT:\n%s\n\nQUESTION:\n%s\n\nAnswer concisely.", contextBlock, question)

	resp, err := p.generator.GenerateContent(ctx, &models.GenerateRequest{
		System:  systemPersona,
		Prompt:  prompt,
		History: history,
	})
	if err != nil {
		p.log.Error(fmt.Sprintf("LLM call failed: %v", err))
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	answerText := resp.Text

	size := 0
	if req.UseMemory {
		if err := p.sessions.Append(ctx, req.SessionID, models.Interaction{Question: question, Answer: answerText}); err != nil {
			return nil, fmt.Errorf("failed to record interaction: %w", err)
		}
		size, err = p.sessions.Size(ctx, req.SessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to read session size: %w", err)
		}
	}

	timestamp := time.Now().Format(time.RFC3339)
	sources := Sources(docs)
	p.appendLog(ctx, question, answerText, sources, timestamp)

	result := &Answer{
		Text:       answerText,
		Sources:    sources,
		Timestamp:  timestamp,
		MemorySize: size,
		Fallback:   usedFallback,
	}
	if detected {
		result.Category = category
	}
	return result, nil
}

// retrieve runs the vector path with the keyword fallback. Both paths first
// search within the detected category and broaden to all categories once when
// the filtered search comes back empty.
func (p *AnswerPipeline) retrieve(ctx context.Context, question string, category models.Category, detected bool) ([]*schema.Document, bool) {
	docs, err := p.vectorRetrieve(ctx, question, category, detected)
	if err == nil {
		return docs, false
	}
	p.log.Warn(fmt.Sprintf("Vector retrieval unavailable (%v); using keyword fallback", err))

	docs = p.keywordRetrieve(ctx, question, category, detected)
	return docs, true
}

func (p *AnswerPipeline) vectorRetrieve(ctx context.Context, question string, category models.Category, detected bool) ([]*schema.Document, error) {
	if p.vectors == nil {
		return nil, fmt.Errorf("vector store not configured")
	}
	emb, err := p.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	filter := models.Category("")
	if detected {
		filter = category
	}
	docs, err := p.vectors.Query(ctx, emb, p.topK, filter)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 && detected {
		p.log.Info(fmt.Sprintf("No results in %s, searching all categories", category))
		docs, err = p.vectors.Query(ctx, emb, p.topK, "")
		if err != nil {
			return nil, err
		}
	}
	return docs, nil
}

func (p *AnswerPipeline) keywordRetrieve(ctx context.Context, question string, category models.Category, detected bool) []*schema.Document {
	filter := models.Category("")
	if detected {
		filter = category
	}
	docs, err := p.keywords.Retrieve(ctx, question, p.fallbackTopK, filter)
	if err != nil {
		p.log.Error(fmt.Sprintf("Keyword fallback failed: %v", err))
		return nil
	}
	if len(docs) == 0 && detected {
		p.log.Info(fmt.Sprintf("No results in %s, searching all categories", category))
		docs, err = p.keywords.Retrieve(ctx, question, p.fallbackTopK, "")
		if err != nil {
			p.log.Error(fmt.Sprintf("Keyword fallback failed: %v", err))
			return nil
		}
	}
	return docs
}

// appendLog records the answered query. Logging failures are reported but do
// not fail the request.
func (p *AnswerPipeline) appendLog(ctx context.Context, question, answer string, sources []string, timestamp string) {
	if p.queryLog == nil {
		return
	}
	entry := &models.QueryLogEntry{
		Query:     question,
		Answer:    answer,
		Sources:   sources,
		Timestamp: timestamp,
	}
	if err := p.queryLog.Append(ctx, entry); err != nil {
		p.log.Warn(fmt.Sprintf("Failed to record query log entry: %v", err))
	}
}
