package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/rail44/adminui/internal/formatter"
	"github.com/rail44/adminui/internal/log"
	"github.com/rail44/adminui/internal/source"
)

// ProgramOptions contains options for creating a Program
type ProgramOptions struct {
	Plain  bool      // Use plain text output instead of TUI
	Output io.Writer // Destination of plain output, stdout when nil
}

// Program manages the TUI program
type Program struct {
	model      *Model
	teaProgram *tea.Program
	isTerminal bool // Whether stdout is a terminal
	plain      bool // Whether to use plain text output
	output     io.Writer
}

// NewProgram creates a new TUI program around model
func NewProgram(model *Model, opts ProgramOptions) *Program {
	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	p := &Program{
		model:      model,
		isTerminal: isTerminal,
		plain:      opts.Plain,
		output:     output,
	}
	if p.IsTUIEnabled() {
		p.teaProgram = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(model.ctx))
	}
	return p
}

// IsTerminal returns whether the program is running in a terminal
func (p *Program) IsTerminal() bool {
	return p.isTerminal
}

// IsTUIEnabled returns whether the TUI is enabled
func (p *Program) IsTUIEnabled() bool {
	return p.isTerminal && !p.plain
}

// Run blocks until the user quits. In plain mode it loads the users,
// prints the first page and returns.
func (p *Program) Run(ctx context.Context) error {
	if !p.IsTUIEnabled() {
		return p.runPlain(ctx)
	}

	// Logs go to the status area while the alternate screen is active
	restore := log.Redirect(p.model.logs.Handle)
	defer restore()

	if _, err := p.teaProgram.Run(); err != nil {
		return fmt.Errorf("failed to run UI: %w", err)
	}
	return nil
}

func (p *Program) runPlain(ctx context.Context) error {
	state := p.model.State()
	state.Initialize(source.Load(ctx, p.model.src, log.Default()))
	_, err := fmt.Fprint(p.output, formatter.Text(state.Snapshot()))
	return err
}

// Reload asks the running TUI to fetch the users again. It is a no-op in
// plain mode.
func (p *Program) Reload() {
	if p.teaProgram != nil {
		p.teaProgram.Send(ReloadMsg{})
	}
}

// Quit stops the TUI program
func (p *Program) Quit() {
	if p.teaProgram != nil {
		p.teaProgram.Quit()
	}
}
