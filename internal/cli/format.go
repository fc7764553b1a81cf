package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/bloom/internal/model"
)

// FormatPrice renders a VND amount with dot thousands separators, e.g. 350.000đ.
func FormatPrice(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + b.String() + "đ"
}

func formatRating(r *float64) string {
	if r == nil {
		return SubtleStyle.Render("-")
	}
	return fmt.Sprintf("%s %.1f", StarIcon, *r)
}

func tableHeader(w io.Writer, columns ...string) {
	styled := make([]string, len(columns))
	rules := make([]string, len(columns))
	for i, c := range columns {
		styled[i] = TableHeaderStyle.Render(c)
		rules[i] = strings.Repeat("-", max(len(c), 4))
	}
	fmt.Fprintln(w, strings.Join(styled, "\t"))
	fmt.Fprintln(w, strings.Join(rules, "\t"))
}

// WriteRecommendations prints ranked recommendations as a table.
func WriteRecommendations(out io.Writer, recs []model.Recommendation) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(out, FormatInfo("No products to recommend yet."))
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	tableHeader(w, "#", "ID", "Product", "Category", "Price", "Rating", "Source", "Score")
	for i, rec := range recs {
		p := rec.Product
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\t%s\t%.2f\n",
			i+1, p.ID, p.Name, p.CategoryName, FormatPrice(p.Price),
			formatRating(p.AvgRating), rec.Source, rec.Score)
	}
	return w.Flush()
}

// WriteChatRecommendations prints the products attached to a bot message.
func WriteChatRecommendations(out io.Writer, recs []model.ChatRecommendation) error {
	if len(recs) == 0 {
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, rec := range recs {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", FlowerIcon, rec.Name, SubtleStyle.Render(FormatPrice(rec.Price)))
	}
	return w.Flush()
}

// WriteBotMessage prints a bot reply with its products.
func WriteBotMessage(out io.Writer, text string, recs []model.ChatRecommendation) error {
	if _, err := fmt.Fprintf(out, "%s %s\n", BotStyle.Render(BotIcon+" Bloom:"), text); err != nil {
		return err
	}
	return WriteChatRecommendations(out, recs)
}

// WriteHistory prints a conversation oldest message first.
func WriteHistory(out io.Writer, messages []model.Message) error {
	if len(messages) == 0 {
		_, err := fmt.Fprintln(out, FormatInfo("No messages in this conversation yet."))
		return err
	}
	for _, msg := range messages {
		stamp := SubtleStyle.Render(msg.CreatedAt.Format("2006-01-02 15:04"))
		if msg.Sender == model.SenderUser {
			if _, err := fmt.Fprintf(out, "%s %s %s\n", stamp, PromptStyle.Render(UserIcon+" Bạn:"), msg.Text); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprint(out, stamp+" "); err != nil {
			return err
		}
		if err := WriteBotMessage(out, msg.Text, msg.Recommendations); err != nil {
			return err
		}
	}
	return nil
}

// WriteKnowledge prints knowledge-base entries.
func WriteKnowledge(out io.Writer, entries []model.FlowerKnowledge) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(out, FormatInfo("Không tìm thấy thông tin phù hợp."))
		return err
	}
	for _, k := range entries {
		var b strings.Builder
		for _, field := range []struct{ label, value string }{
			{"Ý nghĩa", k.Meaning},
			{"Dịp", k.Occasion},
			{"Màu sắc", k.ColorSignificance},
			{"Chăm sóc", k.CareTips},
			{"Mùa", k.Season},
			{"Giá", k.PriceRange},
		} {
			if field.value == "" {
				continue
			}
			fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render(field.label+":"), field.value)
		}
		if _, err := fmt.Fprintln(out, RenderBox(FlowerIcon+" "+k.FlowerName, strings.TrimRight(b.String(), "\n"))); err != nil {
			return err
		}
	}
	return nil
}

// WritePurchases prints a purchase history table.
func WritePurchases(out io.Writer, rows []model.PurchasedProduct) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(out, FormatInfo("No purchases found."))
		return err
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	tableHeader(w, "ID", "Product", "Category", "Orders", "Quantity", "Last purchase")
	for _, r := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\n",
			r.ID, r.Name, r.CategoryName, r.PurchaseCount, r.TotalQuantity,
			r.LastPurchaseDate.Format("2006-01-02"))
	}
	return w.Flush()
}

// WritePreferences prints a user's stored preferences.
func WritePreferences(out io.Writer, prefs []model.UserPreference) error {
	if len(prefs) == 0 {
		_, err := fmt.Fprintln(out, FormatInfo("No preferences saved."))
		return err
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	tableHeader(w, "Type", "Value", "Confidence", "Updated")
	for _, p := range prefs {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\n", p.Type, p.Value, p.Confidence, p.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
