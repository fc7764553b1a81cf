package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/bloom/internal/cli"
	"github.com/Veraticus/bloom/internal/model"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.viewport.View(),
		m.renderStatus(),
		m.theme.InputBox.Width(max(m.width-2, 10)).Render(m.input.View()),
	}
	if m.showHelp {
		sections = append(sections, m.help.View(m.keymap))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render(cli.FlowerIcon + " Bloom - tư vấn hoa")
	session := "phiên mới"
	if m.sessionID != "" {
		session = "phiên " + m.sessionID
	}
	return title + "  " + m.theme.Subtitle.Render(session)
}

func (m Model) renderStatus() string {
	switch {
	case m.waiting:
		return m.spinner.View() + m.theme.StatusInfo.Render(" Đang trả lời...")
	case m.lastError != nil:
		return m.theme.StatusError.Render(cli.ErrorIcon + " Tin nhắn chưa được xử lý")
	default:
		return ""
	}
}

// renderEntries renders the conversation for the viewport.
func (m Model) renderEntries() string {
	if len(m.entries) == 0 {
		return m.theme.Subtitle.Render("Hãy hỏi mình về hoa cho dịp đặc biệt, ý nghĩa các loài hoa hoặc cách chăm sóc hoa.")
	}

	width := max(m.width-4, 20)
	var b strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		label := m.theme.UserLabel.Render(cli.UserIcon + " Bạn")
		if e.sender == model.SenderBot {
			label = m.theme.BotLabel.Render(cli.BotIcon + " Bloom")
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(m.theme.Message.Width(width).Render(e.text))
		b.WriteString("\n")
		for _, rec := range e.recs {
			line := fmt.Sprintf("%s %s %s", cli.FlowerIcon, rec.Name, m.theme.Price.Render(cli.FormatPrice(rec.Price)))
			b.WriteString(m.theme.Product.Render(line))
			b.WriteString("\n")
		}
	}
	return b.String()
}
