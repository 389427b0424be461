// Command ddconrod-render runs WAV files through the DDConrod2 clipper
// offline, driving the plugin exactly like a host: parameters are set
// through the host calls and audio is fed in fixed-size blocks.
//
// Usage:
//
//	ddconrod-render --threshold=0.5 --gain=0.8 input.wav output.wav
//	ddconrod-render --block-size=64 --log-file=render.log input.wav output.wav
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/deathdisco/ddconrod/pkg/framework/debug"
	"github.com/deathdisco/ddconrod/pkg/framework/param"
	"github.com/deathdisco/ddconrod/pkg/plugin"
)

var version = "0.1.0"

// CLI defines the command-line interface
type CLI struct {
	Threshold float32          `help:"Normalized clip threshold (0-1, floored at 0.01)." default:"1.0"`
	Gain      float32          `help:"Normalized output gain (0-1)." default:"1.0"`
	BlockSize int              `help:"Samples per processing block." default:"512"`
	LogFile   string           `type:"path" help:"Write the plugin log to this file instead of stderr."`
	LogLevel  string           `help:"Log level." default:"info" enum:"debug,info,warn,error"`
	Version   kong.VersionFlag `short:"v" help:"Show version information."`

	Input  string `arg:"" name:"input" type:"existingfile" help:"Source WAV file."`
	Output string `arg:"" name:"output" type:"path" help:"Destination WAV file."`
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("ddconrod-render"),
		kong.Description("Offline renderer for the DDConrod2 threshold/gain clipper"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
	)

	if err := run(cli); err != nil {
		ctx.FatalIfErrorf(err)
	}
}

func run(cli *CLI) error {
	if cli.BlockSize <= 0 {
		return fmt.Errorf("block size must be positive, got %d", cli.BlockSize)
	}

	p, err := plugin.New()
	if err != nil {
		return err
	}
	defer closeWithWarning(p, logrus.StandardLogger())

	if err := p.Init(debug.Config{Path: cli.LogFile, Level: cli.LogLevel}); err != nil {
		return err
	}
	log := p.Logger()

	p.SetParameter(param.Threshold, cli.Threshold)
	p.SetParameter(param.Gain, cli.Gain)

	log.WithFields(logrus.Fields{
		"function":  "run",
		"input":     cli.Input,
		"output":    cli.Output,
		"threshold": p.GetParameterText(param.Threshold) + p.GetParameterLabel(param.Threshold),
		"gain":      p.GetParameterText(param.Gain) + p.GetParameterLabel(param.Gain),
		"block":     cli.BlockSize,
	}).Info("Rendering")

	start := time.Now()
	stats, err := renderFile(p, cli.Input, cli.Output, cli.BlockSize)
	if err != nil {
		log.WithError(err).Error("Render failed")
		return err
	}
	elapsed := time.Since(start)

	log.WithFields(logrus.Fields{
		"function": "run",
		"frames":   stats.frames,
		"elapsed":  elapsed.String(),
	}).Info("Render complete")

	printSummary(os.Stdout, cli, stats, elapsed)
	return nil
}

// closeWithWarning closes c and reports a failure on log. The plugin's own
// log output may be what failed to close, so log should be independent of it.
func closeWithWarning(c io.Closer, log logrus.FieldLogger) {
	if err := c.Close(); err != nil {
		log.WithError(err).Warn("Failed to close plugin")
	}
}

func printSummary(w io.Writer, cli *CLI, stats *renderStats, elapsed time.Duration) {
	fmt.Fprintf(w, "Rendered %s -> %s\n", filepath.Base(cli.Input), filepath.Base(cli.Output))
	fmt.Fprintf(w, "  %d Hz, %d channels, %d-bit, %d frames in %d-sample blocks\n",
		stats.sampleRate, stats.channels, stats.bitDepth, stats.frames, cli.BlockSize)
	for ch := range stats.before {
		fmt.Fprintf(w, "  ch%d: peak %.1f -> %.1f dBFS, rms %.1f -> %.1f dBFS, %d samples at full scale\n",
			ch,
			stats.before[ch].peakDB, stats.after[ch].peakDB,
			stats.before[ch].rmsDB, stats.after[ch].rmsDB,
			stats.after[ch].clipped)
	}
	if seconds := elapsed.Seconds(); seconds > 0 && stats.sampleRate > 0 {
		fmt.Fprintf(w, "  Speed: %.1fx realtime\n", float64(stats.frames)/float64(stats.sampleRate)/seconds)
	}
}
