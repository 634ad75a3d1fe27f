package calendar

import "strings"

var moodTips = map[string]string{
	"happy":   "That's wonderful! 🌟 Consider sharing your joy with someone special or write about what made you happy today.",
	"sad":     "It's okay to feel sad. 🤗 Remember, this feeling will pass. Consider talking to someone you trust or practicing self-care.",
	"anxious": "Take deep breaths. 🌬️ Try some grounding exercises: name 5 things you can see, 4 you can touch, 3 you can hear.",
	"tired":   "Rest is important. 😴 Make sure you're getting enough sleep and taking breaks. Your body is telling you something.",
	"calm":    "Beautiful! 🧘‍♀️ This is a perfect time for reflection, meditation, or planning your day mindfully.",
	"angry":   "It's normal to feel angry sometimes. 🔥 Try some physical exercise, deep breathing, or journaling to process these feelings.",
}

const defaultTip = "Remember to be kind to yourself. 💚"

// MoodTip returns a short piece of advice for the given mood name.
func MoodTip(mood string) string {
	if tip, ok := moodTips[strings.ToLower(strings.TrimSpace(mood))]; ok {
		return tip
	}
	return defaultTip
}
