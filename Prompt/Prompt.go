package Prompt

import (
	"IconForge/ImageFetcher"
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrNoInput = errors.New("no input available")

var separator = strings.Repeat("-", 50)

// Request is everything the user picked for one run.
type Request struct {
	Theme      string
	Resolution ImageFetcher.Resolution
	BatchSize  int
}

type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Collect asks for the theme, then the resolution, then the batch size.
func (p *Prompter) Collect() (Request, error) {
	var req Request
	var err error

	if req.Theme, err = p.Theme(); err != nil {
		return req, err
	}
	if req.Resolution, err = p.Resolution(); err != nil {
		return req, err
	}
	if req.BatchSize, err = p.BatchSize(); err != nil {
		return req, err
	}

	return req, nil
}

// Theme returns the line as typed, without the line terminator. An empty theme is
// accepted.
func (p *Prompter) Theme() (string, error) {
	theme, err := p.ask("Please enter a theme: ")
	if err != nil {
		return "", fmt.Errorf("reading theme: %w", err)
	}

	fmt.Fprintf(p.out, "User entered theme: %s\n%s\n", theme, separator)
	return theme, nil
}

func (p *Prompter) Resolution() (ImageFetcher.Resolution, error) {
	answer, err := p.ask("Select a resolution:\n" + menu(resolutionLabels) + "Choice: ")
	if err != nil {
		return ImageFetcher.Resolution{}, fmt.Errorf("reading resolution choice: %w", err)
	}

	choice := ParseResolutionChoice(answer)
	if res, ok := choice.Preset(); ok {
		fmt.Fprintf(p.out, "Using resolution %s\n", res)
		return res, nil
	}

	width, err := p.askPositive("Enter width: ")
	if err != nil {
		return ImageFetcher.Resolution{}, fmt.Errorf("reading custom width: %w", err)
	}
	height, err := p.askPositive("Enter height: ")
	if err != nil {
		return ImageFetcher.Resolution{}, fmt.Errorf("reading custom height: %w", err)
	}

	res := ImageFetcher.Resolution{Width: width, Height: height}
	fmt.Fprintf(p.out, "Using resolution %s\n", res)
	return res, nil
}

func (p *Prompter) BatchSize() (int, error) {
	answer, err := p.ask("Select a batch size:\n" + menu(batchLabels) + "Choice: ")
	if err != nil {
		return 0, fmt.Errorf("reading batch size choice: %w", err)
	}

	choice := ParseBatchChoice(answer)
	if size, ok := choice.Preset(); ok {
		fmt.Fprintf(p.out, "Using batch size %d\n%s\n", size, separator)
		return size, nil
	}

	size, err := p.askPositive("Enter batch size: ")
	if err != nil {
		return 0, fmt.Errorf("reading custom batch size: %w", err)
	}

	fmt.Fprintf(p.out, "Using batch size %d\n%s\n", size, separator)
	return size, nil
}

func (p *Prompter) askPositive(question string) (int, error) {
	answer, err := p.ask(question)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", answer, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("number must be positive, got %d", n)
	}
	return n, nil
}

func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", err
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

func menu(labels []string) string {
	var b strings.Builder
	for i, label := range labels {
		fmt.Fprintf(&b, "  %d) %s\n", i+1, label)
	}
	return b.String()
}
