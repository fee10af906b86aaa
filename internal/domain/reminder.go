package domain

// Fallback content used when the quote of the day cannot be fetched.
const (
	FallbackReminderQuote  = "Stay positive and keep going!"
	FallbackReminderAuthor = "DailyDose"
)

// Reminder is the payload of the repeating daily notification.
type Reminder struct {
	Title   string            `json:"title"`
	Body    string            `json:"body"`
	Hour    int               `json:"hour"`
	Minute  int               `json:"minute"`
	Repeats bool              `json:"repeats"`
	Data    map[string]string `json:"data"`
}

// NewReminder builds the notification for a quote, substituting the fallback
// text or author when either is blank.
func NewReminder(q *Quote, hour, minute int) Reminder {
	text, author := FallbackReminderQuote, FallbackReminderAuthor
	if q != nil {
		if q.Text != "" {
			text = q.Text
		}
		if q.Author != "" {
			author = q.Author
		}
	}

	return Reminder{
		Title:   "DailyDose Today",
		Body:    `"` + text + "\"\n " + author,
		Hour:    hour,
		Minute:  minute,
		Repeats: true,
		Data:    map[string]string{"type": "daily-quote"},
	}
}
