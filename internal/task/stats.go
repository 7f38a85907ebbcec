package task

import "math"

// CompletedCount returns how many tasks are marked done.
func CompletedCount(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if t.IsCompleted {
			n++
		}
	}
	return n
}

// ProgressPercent is round(100 * completed / total), and 0 for an empty list.
func ProgressPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// ActiveTitles returns the titles of incomplete tasks, preserving list order.
func ActiveTitles(tasks []Task) []string {
	titles := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if !t.IsCompleted {
			titles = append(titles, t.Title)
		}
	}
	return titles
}

// Find returns the task with the given id from a snapshot.
func Find(tasks []Task, id string) (Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}
