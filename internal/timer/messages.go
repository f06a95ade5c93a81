package timer

import "github.com/verte-zerg/mindely/internal/model"

var defaultFocusMessages = []string{
	"You're doing great! 🌟",
	"Keep going, you've got this!",
	"Focus at your pace 🍃",
	"Take a breath, you're amazing",
	"One step at a time ✨",
	"You're making progress!",
	"Stay calm, stay focused 🧘",
	"Believe in yourself 💪",
}

var defaultBreakMessages = []string{
	"Time to rest 🌿",
	"Stretch a little, you earned it",
	"Grab some water 💧",
	"Rest your eyes for a moment",
	"Breathe in, breathe out ☁️",
}

// DefaultMessages returns a copy of the built-in encouragement sets.
func DefaultMessages() model.MessageSet {
	return model.MessageSet{
		Focus: append([]string(nil), defaultFocusMessages...),
		Break: append([]string(nil), defaultBreakMessages...),
	}
}

func withDefaultMessages(set model.MessageSet) model.MessageSet {
	out := model.MessageSet{
		Focus: append([]string(nil), set.Focus...),
		Break: append([]string(nil), set.Break...),
	}
	if len(out.Focus) == 0 {
		out.Focus = append([]string(nil), defaultFocusMessages...)
	}
	if len(out.Break) == 0 {
		out.Break = append([]string(nil), defaultBreakMessages...)
	}
	return out
}
