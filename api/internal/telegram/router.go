package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/jiyanshuj/PaperVista/api/internal/exam"
	"github.com/jiyanshuj/PaperVista/api/internal/store"
)

const (
	buildTimeout   = 5 * time.Minute
	archiveTimeout = 5 * time.Second
)

// Router dispatches bot updates onto the exam pipeline. Repo is nil when
// no database is configured; /last then reports the archive as disabled.
type Router struct {
	Bot     *tgbotapi.BotAPI
	Builder *exam.Builder
	Repo    *store.ExamRepo
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if !upd.Message.IsCommand() {
		r.send(cid, "Use /exam to generate a paper. See /start for the format.")
		return
	}

	switch upd.Message.Command() {
	case "start":
		r.send(cid, "Generate an exam paper with:\n"+
			"/exam Course | Exam-Type | topic, topic, ...\n\n"+
			"Exam types: MST-1, MST-2, End-Sem.\n"+
			"Example: /exam Data Structures | MST-1 | Arrays, Linked Lists\n\n"+
			"/last resends the most recently generated paper.")
	case "health":
		r.send(cid, "OK")
	case "exam":
		r.handleExam(cid, upd.Message.CommandArguments())
	case "last":
		r.handleLast(cid)
	default:
		r.send(cid, "Unknown command. Try /start.")
	}
}

func (r *Router) handleExam(cid int64, args string) {
	req, err := parseExamCommand(args)
	if err != nil {
		r.send(cid, err.Error())
		return
	}

	r.send(cid, fmt.Sprintf("Generating a %s paper for %s, hold on...", req.ExamType, req.CourseName))

	ctx, cancel := context.WithTimeout(context.Background(), buildTimeout)
	defer cancel()

	paper, err := r.Builder.Build(ctx, req)
	if err != nil {
		log.Printf("bot: generation failed for chat %d: %v", cid, err)
		r.send(cid, "Could not generate the paper: "+err.Error())
		return
	}

	r.send(cid, FormatPaper(req, paper))
}

// handleLast resends the newest archived paper.
func (r *Router) handleLast(cid int64) {
	if r.Repo == nil {
		r.send(cid, "No archive is configured on this deployment.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
	defer cancel()

	row, err := r.Repo.Latest(ctx)
	if errors.Is(err, store.ErrNotFound) {
		r.send(cid, "No papers have been generated yet. Try /exam first.")
		return
	}
	if err != nil {
		log.Printf("bot: archive read failed for chat %d: %v", cid, err)
		r.send(cid, "Could not read the archive, try again later.")
		return
	}

	req := exam.Request{CourseName: row.CourseName, ExamType: row.ExamType}
	r.send(cid, FormatPaper(req, &row.Paper))
}

// parseExamCommand splits "Course | Exam-Type | topic, topic, ...".
func parseExamCommand(args string) (exam.Request, error) {
	parts := strings.Split(args, "|")
	if len(parts) != 3 {
		return exam.Request{}, fmt.Errorf("expected: /exam Course | Exam-Type | topic, topic, ...")
	}
	req := exam.Request{
		CourseName:    strings.TrimSpace(parts[0]),
		ExamType:      strings.TrimSpace(parts[1]),
		TopicHeadings: strings.TrimSpace(parts[2]),
	}
	if req.CourseName == "" || req.TopicHeadings == "" {
		return exam.Request{}, fmt.Errorf("course name and topics must not be empty")
	}
	return req, nil
}

// FormatPaper renders a generated paper as a plain-text message.
func FormatPaper(req exam.Request, paper *exam.Paper) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s / %s\n", req.CourseName, req.ExamType)
	fmt.Fprintf(&b, "Duration: %s, %d questions (model: %s)\n", paper.Info.Duration, paper.Info.NumQuestions, paper.ModelUsed)
	for _, q := range paper.Questions {
		fmt.Fprintf(&b, "\nQ%d.\n", q.QuestionNumber)
		for _, p := range q.Parts {
			fmt.Fprintf(&b, "  %s) %s (%d marks)\n", p.Label, p.Text, p.Marks)
			if p.HasOR && p.ORText != "" {
				fmt.Fprintf(&b, "     OR: %s\n", p.ORText)
			}
		}
	}
	return b.String()
}

func (r *Router) send(cid int64, text string) {
	// Telegram caps messages at 4096 chars.
	if len(text) > 4000 {
		text = text[:4000] + "…"
	}
	_, _ = r.Bot.Send(tgbotapi.NewMessage(cid, text))
}
