package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/arloliu/fseq/format"
	"github.com/arloliu/fseq/sequence"
	"github.com/arloliu/fseq/storage"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// createdLayout renders the creation time with microsecond precision.
const createdLayout = "2006-01-02 15:04:05.000000"

// summary is the machine readable description of a sequence file.
type summary struct {
	File         string            `json:"file" yaml:"file"`
	Container    string            `json:"container" yaml:"container"`
	FileSize     int64             `json:"file_size" yaml:"file_size"`
	VersionMinor uint8             `json:"version_minor" yaml:"version_minor"`
	Created      string            `json:"created" yaml:"created"`
	ChannelCount uint32            `json:"channel_count" yaml:"channel_count"`
	FrameCount   uint32            `json:"frame_count" yaml:"frame_count"`
	StepTime     string            `json:"step_time" yaml:"step_time"`
	Duration     string            `json:"duration" yaml:"duration"`
	Fingerprint  string            `json:"fingerprint" yaml:"fingerprint"`
	Variables    map[string]string `json:"variables" yaml:"variables"`
}

type infoOptions struct {
	channels int
	frames   bool
	output   string
}

func newInfoCommand(a *app) *cobra.Command {
	opts := &infoOptions{}

	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Print the header, variables and frames of a sequence file",
		Long: `Print the header, variables and frames of a sequence file.

Frames are printed as hex channel values. After the first frame only channels
that changed are shown, and frames identical to the one before are skipped.

Example:
  fseq info show.fseq
  fseq info --channels 16 show.fseq.zst
  fseq info --frames=false --output json show.fseq`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runInfo(a, args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.channels, "channels", 64, "maximum channels printed per frame, 0 for all")
	cmd.Flags().BoolVar(&opts.frames, "frames", true, "print frame data in text output")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "output format (text, json, yaml)")

	return cmd
}

func runInfo(a *app, path string, opts *infoOptions) error {
	seq, sum, err := loadSummary(a, path)
	if err != nil {
		return err
	}

	switch strings.ToLower(opts.output) {
	case "text":
		return writeText(a.out, seq, sum, opts)
	case "json":
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")

		return enc.Encode(sum)
	case "yaml":
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(sum); err != nil {
			return err
		}

		return enc.Close()
	default:
		return fmt.Errorf("invalid output format %q, want text, json or yaml", opts.output)
	}
}

func loadSummary(a *app, path string) (*sequence.Sequence, summary, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, summary{}, err
	}

	container := format.ContainerFromPath(path)
	a.logger.Debug("loading sequence", "path", path, "container", container, "size", stat.Size())

	data, err := storage.Load(path)
	if err != nil {
		return nil, summary{}, err
	}

	seq, err := sequence.Parse(data)
	if err != nil {
		return nil, summary{}, fmt.Errorf("parse %s: %w", path, err)
	}

	a.logger.Info("loaded sequence", "path", path,
		"channels", seq.ChannelCount(), "frames", seq.FrameCount(), "variables", len(seq.Codes()))

	return seq, summary{
		File:         path,
		Container:    container.String(),
		FileSize:     stat.Size(),
		VersionMinor: seq.VersionMinor(),
		Created:      seq.Created().UTC().Format(time.RFC3339Nano),
		ChannelCount: seq.ChannelCount(),
		FrameCount:   seq.FrameCount(),
		StepTime:     seq.StepDuration().String(),
		Duration:     seq.TotalDuration().String(),
		Fingerprint:  fmt.Sprintf("%016x", seq.Fingerprint()),
		Variables:    seq.Variables(),
	}, nil
}

func writeText(w io.Writer, seq *sequence.Sequence, sum summary, opts *infoOptions) error {
	var sb strings.Builder

	for _, code := range seq.Codes() {
		data, _ := seq.Variable(code)
		fmt.Fprintf(&sb, "Variable:      %s=%s\n", code, data)
	}
	fmt.Fprintf(&sb, "Show created:  %s\n", seq.Created().UTC().Format(createdLayout))
	fmt.Fprintf(&sb, "Channel count: %d\n", sum.ChannelCount)
	fmt.Fprintf(&sb, "Frame count:   %d\n", sum.FrameCount)
	fmt.Fprintf(&sb, "Step duration: %v\n", seq.StepDuration())
	fmt.Fprintf(&sb, "Show duration: %v\n", seq.TotalDuration().Truncate(time.Second))
	fmt.Fprintf(&sb, "File size:     %s (%s container)\n", humanize.Bytes(uint64(sum.FileSize)), sum.Container) //nolint:gosec
	fmt.Fprintf(&sb, "Fingerprint:   %s\n", sum.Fingerprint)

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}

	if !opts.frames {
		return nil
	}

	if _, err := io.WriteString(w, "Frames:\n"); err != nil {
		return err
	}

	var previous *sequence.Frame
	for frame := range seq.All() {
		line, err := frame.Dump(opts.channels, previous)
		if err != nil {
			return err
		}

		if _, err := io.WriteString(w, line); err != nil {
			return err
		}

		previous = &frame
	}

	return nil
}
