package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
)

// Prompter запрашивает у пользователя подтверждение.
// Возвращает ErrAborted, если пользователь отказался или прервал ввод.
type Prompter interface {
	Confirm(ctx context.Context, message string) error
}

// LinePrompter ждёт Enter на In.
//
// Отмена ctx (Ctrl+C перехватывается signal.NotifyContext в main)
// и конец ввода без единого символа считаются отказом.
type LinePrompter struct {
	In  io.Reader
	Out *Output
}

// Confirm реализует Prompter.
func (p *LinePrompter) Confirm(ctx context.Context, message string) error {
	p.Out.Prompt(message)

	type line struct {
		text string
		err  error
	}
	done := make(chan line, 1)

	go func() {
		text, err := bufio.NewReader(p.In).ReadString('\n')
		done <- line{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return ErrAborted
	case l := <-done:
		if l.err == nil {
			return nil
		}
		if errors.Is(l.err, io.EOF) && l.text != "" {
			return nil
		}
		return ErrAborted
	}
}
