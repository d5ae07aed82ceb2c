// This tool prints the format, duration, speaker layout and INFO tags of the
// passed wav files.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/cwbudde/waveinfo"
	"github.com/joho/godotenv"
	"github.com/ossrs/go-oryx-lib/errors"
	"github.com/ossrs/go-oryx-lib/logger"
)

const missingPathMessage = "You must pass the path of at least one wav file to inspect"

var (
	errMissingPath   = errors.New("missing path argument")
	errUnknownFormat = errors.New("unknown output format")
)

func main() {
	ctx := logger.WithContext(context.Background())

	err := run(ctx, os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if err == errMissingPath {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	logger.Ef(ctx, "run err %+v", err)
	os.Exit(1)
}

type config struct {
	output   string
	trailing bool
	verbose  bool
	paths    []string
}

// loadConfig parses flags. Flags left unset fall back to WAVEINFO_OUTPUT,
// WAVEINFO_TRAILING and WAVEINFO_VERBOSE, optionally loaded from a dotenv file.
func loadConfig(args []string) (*config, error) {
	fs := flag.NewFlagSet("waveinfo", flag.ContinueOnError)
	envFile := fs.String("env", "", "Path to a dotenv file providing WAVEINFO_* defaults")
	output := fs.String("output", "text", "Output format: text or json")
	trailing := fs.Bool("trailing", false, "Also read chunks stored after the data chunk")
	verbose := fs.Bool("v", false, "Log unknown and skipped chunks")

	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrapf(err, "parse flags")
	}

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			return nil, errors.Wrapf(err, "load %v", *envFile)
		}
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	conf := &config{output: *output, trailing: *trailing, verbose: *verbose, paths: fs.Args()}

	if v := os.Getenv("WAVEINFO_OUTPUT"); v != "" && !set["output"] {
		conf.output = v
	}

	if v, err := strconv.ParseBool(os.Getenv("WAVEINFO_TRAILING")); err == nil && !set["trailing"] {
		conf.trailing = v
	}

	if v, err := strconv.ParseBool(os.Getenv("WAVEINFO_VERBOSE")); err == nil && !set["v"] {
		conf.verbose = v
	}

	if conf.output != "text" && conf.output != "json" {
		return nil, errors.Wrapf(errUnknownFormat, "output %v", conf.output)
	}

	if len(conf.paths) < 1 {
		return nil, errMissingPath
	}

	return conf, nil
}

func run(ctx context.Context, args []string, out io.Writer) error {
	conf, err := loadConfig(args)
	if err != nil {
		return err
	}

	dec := waveinfo.NewDecoder()
	dec.Registry.Register(waveinfo.BroadcastChunkHandler{})
	dec.ScanTrailing = conf.trailing

	var reports []report

	for _, path := range conf.paths {
		buf, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "read %v", path)
		}

		info, err := dec.Decode(buf)
		if err != nil {
			return errors.Wrapf(err, "decode %v", path)
		}

		if conf.verbose {
			for _, c := range info.UnknownChunks {
				logger.Tf(ctx, "%v: unknown chunk %q order=%v size=%v", path, string(c.ID[:]), c.Order, c.Size)
			}

			for _, c := range info.Chunks {
				id := c.Chunk.ChunkID()
				logger.Tf(ctx, "%v: decoded chunk %q order=%v", path, string(id[:]), c.Order)
			}

			for _, s := range info.Skipped {
				logger.Wf(ctx, "%v: ignore chunk %q order=%v err %v", path, string(s.ID[:]), s.Order, s.Err)
			}
		}

		reports = append(reports, newReport(path, info))
	}

	if conf.output == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		if err := enc.Encode(reports); err != nil {
			return errors.Wrapf(err, "encode json")
		}

		return nil
	}

	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(out)
		}

		r.writeText(out)
	}

	return nil
}

type report struct {
	Path         string                     `json:"path"`
	Format       waveinfo.Format            `json:"format"`
	Duration     float64                    `json:"duration"`
	Channels     int                        `json:"channels"`
	BitDepth     int                        `json:"bit_depth"`
	SampleRate   int                        `json:"sample_rate"`
	DataRate     int                        `json:"data_rate"`
	TotalSamples int                        `json:"total_samples"`
	SubFormat    string                     `json:"sub_format,omitempty"`
	Speakers     []waveinfo.SpeakerPosition `json:"speakers"`
	Tags         map[string]string          `json:"tags"`
	Broadcast    *broadcastReport           `json:"broadcast,omitempty"`
}

type broadcastReport struct {
	Description     string `json:"description"`
	Originator      string `json:"originator"`
	OriginationDate string `json:"origination_date"`
	OriginationTime string `json:"origination_time"`
	TimeReference   uint64 `json:"time_reference"`
	CodingHistory   string `json:"coding_history,omitempty"`
}

func newReport(path string, info *waveinfo.WavFile) report {
	format := info.Detail.AudioFormat()

	r := report{
		Path:         path,
		Format:       info.Detail.Format,
		Duration:     info.Detail.Duration,
		Channels:     format.NumChannels,
		BitDepth:     info.Detail.BitDepth,
		SampleRate:   format.SampleRate,
		DataRate:     info.Raw.DataRate,
		TotalSamples: info.Raw.TotalSamples,
		SubFormat:    info.Raw.SubFormatGUID(),
		Speakers:     info.Detail.ChannelPositions,
		Tags:         info.TagMap(),
	}

	if b := info.Broadcast(); b != nil {
		r.Broadcast = &broadcastReport{
			Description:     b.Description,
			Originator:      b.Originator,
			OriginationDate: b.OriginationDate,
			OriginationTime: b.OriginationTime,
			TimeReference:   b.TimeReference,
			CodingHistory:   b.CodingHistory,
		}
	}

	return r
}

func (r report) writeText(out io.Writer) {
	speakers := make([]string, len(r.Speakers))
	for i, sp := range r.Speakers {
		speakers[i] = sp.String()
	}

	fmt.Fprintf(out, "File: %s\n", r.Path)
	fmt.Fprintf(out, "Format: %s\n", r.Format)
	fmt.Fprintf(out, "Duration: %.6fs\n", r.Duration)
	fmt.Fprintf(out, "Channels: %d\n", r.Channels)
	fmt.Fprintf(out, "BitDepth: %d\n", r.BitDepth)
	fmt.Fprintf(out, "SampleRate: %d\n", r.SampleRate)
	fmt.Fprintf(out, "DataRate: %d\n", r.DataRate)
	fmt.Fprintf(out, "TotalSamples: %d\n", r.TotalSamples)

	if r.SubFormat != "" {
		fmt.Fprintf(out, "SubFormat: %s\n", r.SubFormat)
	}

	fmt.Fprintf(out, "Speakers: %s\n", strings.Join(speakers, ", "))

	if b := r.Broadcast; b != nil {
		fmt.Fprintln(out, "Broadcast:")
		fmt.Fprintf(out, "\tDescription: %s\n", b.Description)
		fmt.Fprintf(out, "\tOriginator: %s\n", b.Originator)
		fmt.Fprintf(out, "\tOrigination: %s %s\n", b.OriginationDate, b.OriginationTime)
		fmt.Fprintf(out, "\tTimeReference: %d\n", b.TimeReference)
	}

	if len(r.Tags) == 0 {
		fmt.Fprintln(out, "No metadata present")
		return
	}

	labels := make([]string, 0, len(r.Tags))
	for label := range r.Tags {
		labels = append(labels, label)
	}

	sort.Strings(labels)

	fmt.Fprintln(out, "Tags:")

	for _, label := range labels {
		fmt.Fprintf(out, "\t%s: %s\n", label, r.Tags[label])
	}
}
