// Package assistant implements the rule-based chat responder. Rules are
// matched top to bottom against the lowercased message; the first hit wins.
package assistant

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/pookie/pookie/application/port/outbound"
)

var (
	reGreeting   = regexp.MustCompile(`^(hi|hello|hey|greetings|good\s*(morning|afternoon|evening)|howdy|yo)\b`)
	reHowAreYou  = regexp.MustCompile(`how are you|what'?s up|how'?s it going`)
	reTaskCount  = regexp.MustCompile(`how many (tasks?|todos?)|task count|todo count`)
	rePending    = regexp.MustCompile(`pending|incomplete|not done|what('?s| is) left|remaining`)
	reCompleted  = regexp.MustCompile(`completed?|done|finished`)
	reAddTask    = regexp.MustCompile(`add (a )?(task|todo)|create (a )?(task|todo)|new (task|todo)`)
	reDelete     = regexp.MustCompile(`delete|remove|get rid of`)
	reTaskWord   = regexp.MustCompile(`task|todo`)
	reMarkDone   = regexp.MustCompile(`(mark|set).*(done|complete)|complete (a |the )?(task|todo)`)
	reHelp       = regexp.MustCompile(`help|what can you (do|help)|how (do|can) (i|you)|features?|capabilities`)
	reAnalytics  = regexp.MustCompile(`analytics|productivity|stats|statistics|progress|how am i doing`)
	reThanks     = regexp.MustCompile(`thank|thanks|thx|ty`)
	reBye        = regexp.MustCompile(`bye|goodbye|see you|gotta go|leaving`)
	reMotivation = regexp.MustCompile(`motivat|encourage|inspire|feeling (lazy|down|unmotivated)`)
	rePriority   = regexp.MustCompile(`priority|important|urgent|critical`)
	reDueDate    = regexp.MustCompile(`due date|deadline|when|schedule`)
	reTags       = regexp.MustCompile(`tag|categor|label|organiz`)
)

// RuleAssistant generates canned replies from the caller's task stats
type RuleAssistant struct{}

func NewRuleAssistant() *RuleAssistant {
	return &RuleAssistant{}
}

func (a *RuleAssistant) Reply(ctx context.Context, message string, actx outbound.AssistantContext) (string, error) {
	msg := strings.ToLower(strings.TrimSpace(message))
	name := actx.UserName
	if name == "" {
		name = "there"
	}
	stats := actx.Stats

	switch {
	case reGreeting.MatchString(msg):
		return pick(
			fmt.Sprintf("Hi %s! How can I help you organize your tasks today?", name),
			fmt.Sprintf("Hello %s! Ready to tackle your todos?", name),
			fmt.Sprintf("Hey %s! What can I help you with today?", name),
		), nil

	case reHowAreYou.MatchString(msg):
		return fmt.Sprintf("I'm doing great, thanks for asking! I'm here to help you stay organized. You have %d pending task%s right now.",
			stats.Pending, plural(stats.Pending)), nil

	case reTaskCount.MatchString(msg):
		if stats.Total == 0 {
			return fmt.Sprintf("You don't have any tasks yet, %s. Would you like to add some? Head over to the Dashboard to create your first task!", name), nil
		}
		return fmt.Sprintf("You have %d total task%s: %d completed and %d pending. Keep up the great work!",
			stats.Total, plural(stats.Total), stats.Completed, stats.Pending), nil

	case rePending.MatchString(msg):
		if stats.Pending == 0 {
			return "Amazing! You have no pending tasks. You're all caught up!", nil
		}
		return fmt.Sprintf("You have %d pending task%s. Head to the Dashboard to see and manage them!",
			stats.Pending, plural(stats.Pending)), nil

	case reCompleted.MatchString(msg):
		if stats.Completed == 0 {
			return "No tasks completed yet, but that's okay! Every journey starts with a single step.", nil
		}
		return fmt.Sprintf("You've completed %d task%s. Great progress!", stats.Completed, plural(stats.Completed)), nil

	case reAddTask.MatchString(msg):
		return "I'd love to help you add a task! For now, please head to the Dashboard where you can easily add new tasks with priorities, due dates, and tags. I'm working on adding that feature directly in chat!", nil

	case reDelete.MatchString(msg) && reTaskWord.MatchString(msg):
		return "To delete a task, please go to the Dashboard and click the delete button on the task you want to remove. I'll be able to help with that directly in chat soon!", nil

	case reMarkDone.MatchString(msg):
		return "To mark a task as complete, visit the Dashboard and click the checkbox next to the task. Each completion is a small victory!", nil

	case reHelp.MatchString(msg):
		return "I can help you with your todos! Here's what I can do:\n\n" +
			"- Tell you how many tasks you have\n" +
			"- Show your pending or completed task counts\n" +
			"- Guide you on how to add, complete, or delete tasks\n" +
			"- Chat about your productivity\n\n" +
			"For managing tasks directly, head to the Dashboard. What would you like to know?", nil

	case reAnalytics.MatchString(msg):
		if stats.Total == 0 {
			return "Check out the Analytics page to see your productivity trends once you start adding tasks!", nil
		}
		return fmt.Sprintf("Your completion rate is %d%%! You've completed %d out of %d tasks. Visit the Analytics page for detailed insights and trends.",
			stats.CompletionRate, stats.Completed, stats.Total), nil

	case reThanks.MatchString(msg):
		return pick(
			fmt.Sprintf("You're welcome, %s! Happy to help.", name),
			"Anytime! Let me know if you need anything else.",
			"My pleasure! Good luck with your tasks!",
		), nil

	case reBye.MatchString(msg):
		return fmt.Sprintf("Goodbye, %s! Good luck with your tasks. Come back anytime!", name), nil

	case reMotivation.MatchString(msg):
		return pick(
			fmt.Sprintf("You've got this, %s! Every task you complete brings you closer to your goals.", name),
			"Remember: progress, not perfection! Start with one small task and build momentum.",
			"The secret to getting ahead is getting started. Pick one task and crush it!",
			"You're capable of amazing things. Let's tackle those tasks together!",
		), nil

	case rePriority.MatchString(msg):
		return "Great question! In the Dashboard, you can set task priorities (low, normal, high, critical) when creating or editing tasks. This helps you focus on what matters most!", nil

	case reDueDate.MatchString(msg):
		return "You can set due dates for your tasks in the Dashboard! This helps you stay on track and never miss a deadline.", nil

	case reTags.MatchString(msg):
		return "You can add tags to your tasks to organize them by category (like #work, #personal, #shopping). Check out the Dashboard to add tags to your tasks!", nil
	}

	return pick(
		"I'm here to help with your todos! You can ask me about your task count, pending items, or how to manage your tasks. What would you like to know?",
		`I can help you stay organized! Try asking "how many tasks do I have?" or "what's pending?" - or visit the Dashboard to manage your todos directly.`,
		"Not sure I understood that, but I'm happy to help with your tasks! Ask me about your todo status or check the Dashboard for full task management.",
	), nil
}

func pick(options ...string) string {
	return options[rand.Intn(len(options))]
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
