package game

import "time"

var praisePhrases = []string{
	"Awesome!",
	"Excellent!",
	"Great job!",
	"Perfect!",
	"Well done!",
	"Fantastic!",
	"Outstanding!",
	"Brilliant!",
	"Superb!",
	"Magnificent!",
	"Splendid!",
	"Amazing!",
	"Wonderful!",
	"Incredible!",
	"Marvelous!",
}

var encouragementPhrases = []string{
	"Keep trying!",
	"Don't give up!",
	"You can do it!",
	"Almost there!",
	"Keep going!",
	"Try again!",
	"You're doing great!",
	"Stay focused!",
	"Don't worry!",
	"Take your time!",
	"Believe in yourself!",
	"Keep practicing!",
	"You're getting better!",
	"Stay positive!",
}

func praisePhrase(now time.Time) string {
	return praisePhrases[int(now.UnixNano())%len(praisePhrases)]
}

func encouragementPhrase(now time.Time) string {
	return encouragementPhrases[int(now.UnixNano())%len(encouragementPhrases)]
}
