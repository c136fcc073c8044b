// Package narrator speaks gameplay text through an external TTS command
// without ever blocking the game loop.
package narrator

import (
	"fmt"
	"os"
	"os/exec"
)

// Speaker converts one line of text to speech, blocking until done.
type Speaker interface {
	Speak(text string) error
}

// CommandSpeaker shells out to a text-to-speech binary for each line.
type CommandSpeaker struct {
	path string
	args []string
}

// speech engines probed in order; each takes the text as its last argument.
var engines = [][]string{
	{"espeak-ng", "-s", "150"},
	{"espeak", "-s", "150"},
	{"say"},
}

// FindSpeaker probes the PATH for a known TTS engine. It returns nil when
// none is installed; narration is then silently disabled.
func FindSpeaker() *CommandSpeaker {
	for _, e := range engines {
		if path, err := exec.LookPath(e[0]); err == nil {
			return &CommandSpeaker{path: path, args: e[1:]}
		}
	}
	return nil
}

// Speak runs the engine synchronously for one line.
func (s *CommandSpeaker) Speak(text string) error {
	cmd := exec.Command(s.path, append(s.args, text)...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run %s: %w", s.path, err)
	}
	return nil
}

// Narrator owns a single background goroutine that drains queued lines
// through a Speaker. Enqueue never blocks: when the queue is full the line
// is dropped, since stale narration is worse than none.
type Narrator struct {
	queue chan string
	done  chan struct{}
}

const queueSize = 8

// New starts the speech worker. A nil speaker yields a nil narrator, which
// callers treat as narration off.
func New(speaker Speaker) *Narrator {
	if speaker == nil {
		return nil
	}
	n := &Narrator{
		queue: make(chan string, queueSize),
		done:  make(chan struct{}),
	}
	go n.run(speaker)
	return n
}

func (n *Narrator) run(speaker Speaker) {
	defer close(n.done)
	for text := range n.queue {
		if err := speaker.Speak(text); err != nil {
			logErrf("failed to narrate: %v\n", err)
		}
	}
}

// Enqueue queues text for speech. It drops the line when the queue is full
// and is a no-op on a nil narrator.
func (n *Narrator) Enqueue(text string) {
	if n == nil || text == "" {
		return
	}
	select {
	case n.queue <- text:
	default:
	}
}

// Close stops accepting lines and waits for the worker to finish the queue.
func (n *Narrator) Close() {
	if n == nil {
		return
	}
	close(n.queue)
	<-n.done
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
