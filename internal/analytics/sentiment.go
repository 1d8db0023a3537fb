package analytics

import "strings"

// RiskKeywords trip the self-harm flag on plain substring containment.
// Spelling variants ("self harm" / "self-harm") are listed separately; there is
// deliberately no word-boundary handling.
var RiskKeywords = []string{
	"suicide", "self-harm", "kill myself", "want to die",
	"end my life", "hurt myself", "no reason to live",
	"better off dead", "self harm", "cut myself", "overdose",
	"hang myself", "jump off", "slit my wrists",
}

// EmotionCategory pairs an emotion label with the keywords that vote for it.
type EmotionCategory struct {
	Label    string
	Keywords []string
}

// EmotionCategories is a slice rather than a map: when two categories score the
// same keyword count, the one declared first wins.
var EmotionCategories = []EmotionCategory{
	{"Happy", []string{"happy", "joy", "excited", "great", "wonderful", "amazing", "love", "grateful", "blessed"}},
	{"Sad", []string{"sad", "depressed", "down", "unhappy", "miserable", "hopeless", "lonely", "empty"}},
	{"Angry", []string{"angry", "mad", "frustrated", "annoyed", "irritated", "furious", "hate"}},
	{"Anxious", []string{"worried", "nervous", "stressed", "overwhelmed", "panic", "fear", "anxious"}},
	{"Calm", []string{"calm", "relaxed", "peaceful", "serene", "content", "at ease"}},
	{"Excited", []string{"excited", "thrilled", "eager", "enthusiastic", "pumped"}},
	{"Tired", []string{"tired", "exhausted", "drained", "fatigued", "sleepy"}},
	{"Confused", []string{"confused", "lost", "uncertain", "unsure", "puzzled"}},
}

var PositiveWords = []string{
	"happy", "joy", "great", "wonderful", "amazing", "excited", "good", "better",
	"best", "love", "grateful", "blessed", "awesome", "fantastic",
	"perfect", "beautiful", "excellent", "outstanding", "superb",
}

var NegativeWords = []string{
	"sad", "depressed", "bad", "terrible", "awful", "hate", "worst", "angry",
	"anxious", "stressed", "hopeless", "miserable", "frustrated", "disappointed",
	"devastated", "heartbroken", "worthless", "guilty", "ashamed",
}

// NeutralEmotion is returned when no emotion keyword matches at all.
const NeutralEmotion = "Neutral"

// Classification is the outcome of scoring one piece of journal text.
type Classification struct {
	Score    float64 `json:"score"`
	Emotion  string  `json:"emotion"`
	RiskFlag bool    `json:"risk_flag"`
}

// Classify scores free text into a bounded sentiment score, an emotion label,
// and a self-harm risk flag. It is a pure function of the input and must be
// re-run whenever journal content is edited.
func Classify(text string) Classification {
	lower := strings.ToLower(text)

	pos := countHits(lower, PositiveWords)
	neg := countHits(lower, NegativeWords)
	score := 0.0
	if pos+neg > 0 {
		score = float64(pos-neg) / float64(pos+neg)
		score = clamp(score, -1, 1)
	}

	return Classification{
		Score:    round3(score),
		Emotion:  detectEmotion(lower),
		RiskFlag: containsRisk(lower),
	}
}

// SentimentLabel buckets a sentiment score into a display label.
func SentimentLabel(score float64) string {
	switch {
	case score >= 0.5:
		return "Very Positive"
	case score >= 0.1:
		return "Positive"
	case score > -0.1:
		return "Neutral"
	case score > -0.5:
		return "Negative"
	default:
		return "Very Negative"
	}
}

func detectEmotion(lower string) string {
	best := NeutralEmotion
	bestCount := 0
	for _, cat := range EmotionCategories {
		if n := countHits(lower, cat.Keywords); n > bestCount {
			best = cat.Label
			bestCount = n
		}
	}
	return best
}

func containsRisk(lower string) bool {
	for _, kw := range RiskKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// countHits counts how many of the given keywords appear in the text. Each
// keyword counts at most once no matter how often it occurs.
func countHits(lower string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			n++
		}
	}
	return n
}
