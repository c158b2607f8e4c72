package vault

import "fmt"

// CueKey identifies a narration clip. The key space is closed: fixed keys
// plus a small integer index.
type CueKey string

const (
	CueIntro   CueKey = "intro"
	CueCorrect CueKey = "correct_answer"
	CueVictory CueKey = "victory_audio"
	CueTimesUp CueKey = "times_up"
)

// MaxWrongCue is the highest wrong_{n} index; later attempts reuse it.
const MaxWrongCue = HintThreshold

// CueRiddle returns the key narrating riddle i (1-based).
func CueRiddle(i int) CueKey {
	return CueKey(fmt.Sprintf("riddle_%d", i))
}

// CueHint returns the key narrating the hint of riddle i (1-based).
func CueHint(i int) CueKey {
	return CueKey(fmt.Sprintf("hint_%d", i))
}

// CueWrong returns the key for the n-th wrong attempt, capped at MaxWrongCue.
func CueWrong(n int) CueKey {
	if n < 1 {
		n = 1
	}
	if n > MaxWrongCue {
		n = MaxWrongCue
	}
	return CueKey(fmt.Sprintf("wrong_%d", n))
}

// CueKeys enumerates every key a riddle set of size n can produce.
func CueKeys(n int) []CueKey {
	keys := []CueKey{CueIntro, CueCorrect, CueVictory, CueTimesUp}
	for i := 1; i <= n; i++ {
		keys = append(keys, CueRiddle(i), CueHint(i))
	}
	for w := 1; w <= MaxWrongCue; w++ {
		keys = append(keys, CueWrong(w))
	}
	return keys
}
