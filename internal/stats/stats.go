// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/kweston/typequest/internal/game"
)

const sparkChars = " .:-=+*#%@"

// RunMetrics computes WPM, CPM, and accuracy for a completed run.
func RunMetrics(run game.Run) (wpm, cpm, accuracy float64) {
	minutes := run.EndedAt.Sub(run.StartedAt).Minutes()
	if minutes <= 0 {
		return 0, 0, 0
	}
	cpm = float64(run.CorrectChars) / minutes
	wpm = cpm / 5.0
	if run.TotalChars > 0 {
		accuracy = float64(run.CorrectChars) / float64(run.TotalChars)
	}
	return wpm, cpm, accuracy
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		n := i + 1
		if i >= window {
			sum -= values[i-window]
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		idx := int(math.Round((v - lo) / (hi - lo) * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		} else if idx > len(sparkChars)-1 {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints aggregate figures over the given runs.
func RenderSummary(w io.Writer, runs []game.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded yet.")
		return err
	}
	var totalScore, bestScore, bestCombo int
	var totalAcc, totalSpeed, bestSpeed float64
	for _, r := range runs {
		totalScore += r.Score
		if r.Score > bestScore {
			bestScore = r.Score
		}
		if r.MaxCombo > bestCombo {
			bestCombo = r.MaxCombo
		}
		_, cpm, acc := RunMetrics(r)
		totalAcc += acc
		totalSpeed += cpm
		if cpm > bestSpeed {
			bestSpeed = cpm
		}
	}
	count := float64(len(runs))
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Runs: %d\n", len(runs)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Score: %.0f\n", float64(totalScore)/count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best Score: %d\n", bestScore); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Speed: %.1f cpm\n", totalSpeed/count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best Speed: %.1f cpm\n", bestSpeed); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Accuracy: %.1f%%\n", totalAcc/count*100); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best Combo: %dx\n", bestCombo); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderRunTable prints recent runs newest first.
func RenderRunTable(w io.Writer, runs []game.Run) error {
	if len(runs) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Recent Runs"); err != nil {
		return err
	}
	headers := []string{"Date", "Lesson", "Score", "Accuracy", "Speed", "Combo", "Errors"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.EndedAt.Format("2006-01-02 15:04"),
			r.LessonTitle,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d%%", r.Accuracy),
			fmt.Sprintf("%d cpm", r.Speed),
			fmt.Sprintf("%dx", r.MaxCombo),
			fmt.Sprintf("%d", r.Errors),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTrends prints speed and accuracy sparklines over the runs in
// chronological order, smoothed by a moving average.
func RenderTrends(w io.Writer, runs []game.Run, window int) error {
	if len(runs) < 2 {
		return nil
	}
	speeds := make([]float64, len(runs))
	accs := make([]float64, len(runs))
	// Runs arrive newest first; trends read left to right in time.
	for i, r := range runs {
		j := len(runs) - 1 - i
		_, cpm, acc := RunMetrics(r)
		speeds[j] = cpm
		accs[j] = acc * 100
	}
	speeds = MovingAverage(speeds, window)
	accs = MovingAverage(accs, window)

	if _, err := fmt.Fprintln(w, "Trends"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Speed    %s\n", Sparkline(speeds)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Accuracy %s\n", Sparkline(accs)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
