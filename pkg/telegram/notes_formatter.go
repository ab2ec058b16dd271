package telegram

import (
	"fmt"
	"strings"

	"golang-stock-dashboard/internal/entity"
)

// FormatPendingReviewReminder formats a Markdown reminder listing trade
// predictions whose outcome has not been filled in yet. Long lists are
// truncated to keep the message within Telegram limits.
func FormatPendingReviewReminder(pending []entity.NoteRecord) string {
	if len(pending) == 0 {
		return "沒有待回填結果的預判。"
	}

	const maxListed = 20
	var b strings.Builder
	b.WriteString(fmt.Sprintf("⚠️ *有 %d 筆過去預判尚未回填結果*\n\n", len(pending)))

	for i, record := range pending {
		if i >= maxListed {
			b.WriteString(fmt.Sprintf("…以及另外 %d 筆\n", len(pending)-maxListed))
			break
		}
		line := fmt.Sprintf("• %s `%s`", record.Date, record.Code)
		if record.Prediction != "" {
			line += " — " + record.Prediction
		}
		if record.Confidence != nil {
			line += fmt.Sprintf("（信心 %.0f）", *record.Confidence)
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}
