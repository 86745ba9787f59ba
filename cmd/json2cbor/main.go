// Command json2cbor converts JSON documents to CBOR.
//
// The default mode streams parser events straight into the CBOR encoder,
// producing indefinite-length containers without buffering the document
// tree. --definite decodes to a tree first and emits definite-length
// containers. --diag prints CBOR diagnostic notation instead of binary.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	diag "github.com/fxamacker/cbor/v2"

	"github.com/forksnd/staj/cbor"
	"github.com/forksnd/staj/json"
)

// CLI defines the json2cbor command-line interface.
type CLI struct {
	Input  string `arg:"" optional:"" help:"Input JSON file (defaults to stdin)"`
	Output string `short:"o" help:"Output file (defaults to stdout)"`

	Definite       bool `help:"Buffer the document and emit definite-length containers"`
	PackStrings    bool `help:"Enable string-reference packing (tag 256)"`
	Comments       bool `help:"Allow // and /* */ comments in the input"`
	TrailingCommas bool `help:"Allow trailing commas in the input"`
	Lossless       bool `help:"Preserve fractional numbers as decimal fractions (tag 4)"`

	ChunkSize int  `default:"4096" help:"Parser feed size in bytes"`
	Diag      bool `help:"Print CBOR diagnostic notation instead of binary output"`
	Verbose   bool `short:"v" help:"Enable verbose diagnostics"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("json2cbor"),
		kong.Description("Convert JSON to RFC 8949 CBOR."),
	)

	if err := run(&cli); err != nil {
		ctx.FatalIfErrorf(err)
	}
}

func run(cli *CLI) error {
	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	data, err := readInput(cli.Input)
	if err != nil {
		return err
	}
	log.Debug("read input", "bytes", len(data))

	parseOpts := json.Options{
		AllowComments:      cli.Comments,
		AllowTrailingComma: cli.TrailingCommas,
		LosslessNumber:     cli.Lossless,
	}
	encOpts := cbor.EncodeOptions{PackStrings: cli.PackStrings}

	out, err := convert(data, cli, parseOpts, encOpts)
	if err != nil {
		return err
	}
	log.Debug("encoded", "bytes", len(out))

	if cli.Diag {
		notation, err := diag.Diagnose(out)
		if err != nil {
			return fmt.Errorf("diagnose: %w", err)
		}
		fmt.Println(notation)
		return nil
	}
	return writeOutput(cli.Output, out)
}

// convert runs either the streaming or the tree-buffered pipeline.
func convert(data []byte, cli *CLI, parseOpts json.Options, encOpts cbor.EncodeOptions) ([]byte, error) {
	if cli.Definite {
		v, err := json.Decode(data, parseOpts)
		if err != nil {
			return nil, err
		}
		return cbor.Marshal(&v, encOpts)
	}

	bb := cbor.GetByteBuffer()
	defer cbor.PutByteBuffer(bb)

	p := json.NewChunkParser(parseOpts, nil)
	enc := cbor.NewEncoder(bb, encOpts)

	chunk := cli.ChunkSize
	if chunk <= 0 {
		chunk = 4096
	}
	for off := 0; off < len(data); off += chunk {
		end := min(off+chunk, len(data))
		p.Update(data[off:end])
		for !p.SourceExhausted() && !p.Finished() {
			if err := p.ParseSome(enc); err != nil {
				return nil, err
			}
		}
	}
	if err := p.FinishParse(enc); err != nil {
		return nil, err
	}
	if err := p.CheckDone(); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())
	return out, nil
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return data, nil
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}
