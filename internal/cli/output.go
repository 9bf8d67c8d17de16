package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// detailIndent — отступ блока деталей (тело ответа API и т.п.).
const detailIndent = "  "

// Output управляет выводом CLI.
//
// Идентификаторы (pipeline id, run id) пишутся в stdout без оформления,
// чтобы их можно было использовать в pipe. Сообщения (успех, ошибки,
// предупреждения) — в stderr, с цветом, если stderr — терминал.
type Output struct {
	w    io.Writer // stdout для данных
	errW io.Writer // stderr для сообщений

	red    lipgloss.Style
	green  lipgloss.Style
	yellow lipgloss.Style
	bold   lipgloss.Style
}

// NewOutput создаёт Output. nil-писатели заменяются на os.Stdout/os.Stderr.
func NewOutput(w, errW io.Writer) *Output {
	if w == nil {
		w = os.Stdout
	}
	if errW == nil {
		errW = os.Stderr
	}

	r := lipgloss.NewRenderer(errW)

	return &Output{
		w:      w,
		errW:   errW,
		red:    r.NewStyle().Foreground(lipgloss.Color("1")),
		green:  r.NewStyle().Foreground(lipgloss.Color("2")),
		yellow: r.NewStyle().Foreground(lipgloss.Color("3")),
		bold:   r.NewStyle().Bold(true),
	}
}

// Print выводит строку данных в stdout.
func (o *Output) Print(s string) {
	fmt.Fprintln(o.w, s)
}

// Success выводит сообщение об успехе.
func (o *Output) Success(msg string) {
	fmt.Fprintln(o.errW, o.green.Render(msg))
}

// Error выводит сообщение об ошибке.
func (o *Output) Error(msg string) {
	fmt.Fprintln(o.errW, o.red.Render(msg))
}

// Warn выводит предупреждение с префиксом "⚠".
func (o *Output) Warn(msg string) {
	fmt.Fprintln(o.errW, o.yellow.Render("⚠ "+msg))
}

// Notice выводит вспомогательное сообщение (ссылки, подсказки).
func (o *Output) Notice(msg string) {
	fmt.Fprintln(o.errW, o.yellow.Render(msg))
}

// Emphasis выводит сообщение жирным.
func (o *Output) Emphasis(msg string) {
	fmt.Fprintln(o.errW, o.bold.Render(msg))
}

// Prompt выводит приглашение к вводу.
func (o *Output) Prompt(msg string) {
	fmt.Fprintln(o.errW, o.yellow.Bold(true).Render(msg))
}

// Detail выводит блок деталей с отступом.
func (o *Output) Detail(text string) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return
	}
	fmt.Fprintln(o.errW, o.yellow.Render(indent(text)))
}

func indent(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = detailIndent + line
	}
	return strings.Join(lines, "\n")
}
