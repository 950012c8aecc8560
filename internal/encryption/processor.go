package encryption

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Varbin/xtea3/internal/config"
	"github.com/Varbin/xtea3/internal/fileutil"
	"github.com/Varbin/xtea3/pkg/modes"
	"github.com/Varbin/xtea3/pkg/padding"
	"github.com/Varbin/xtea3/pkg/primitive"
)

// Processor handles the encryption and decryption of files.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// key stores the primitive key
	key []byte

	// params is the envelope template used for encryption
	params header

	// results channels processing outcomes to the printer goroutine
	results chan Result

	// out and errOut receive progress and error lines
	out, errOut io.Writer
}

// Stats summarizes a ProcessFiles run.
type Stats struct {
	Processed  int
	Errored    int
	InputSize  int64
	OutputSize int64
}

// NewProcessor creates a new Processor with the given configuration.
// Encryption settings are resolved and checked up front so that a bad mode or
// segment size fails before any file is touched.
func NewProcessor(cfg *config.Config) (*Processor, error) {
	key, err := loadKey(cfg.Key)
	if err != nil {
		return nil, err
	}

	processor := &Processor{
		cfg:     cfg,
		key:     key,
		results: make(chan Result, len(cfg.Files)),
		out:     os.Stdout,
		errOut:  os.Stderr,
	}

	if cfg.Decrypt {
		return processor, nil
	}

	params, err := encryptionParams(cfg)
	if err != nil {
		return nil, err
	}

	processor.params = params

	// Dry construction validates the combination with a placeholder IV.
	if _, err := processor.newContext(params.withIV(make([]byte, primitive.BlockSize))); err != nil {
		return nil, fmt.Errorf("encrypt: %w", err)
	}

	return processor, nil
}

// encryptionParams turns the configuration into an envelope template.
func encryptionParams(cfg *config.Config) (header, error) {
	mode, err := modes.ParseMode(cfg.Mode)
	if err != nil {
		return header{}, fmt.Errorf("encrypt: %w", err)
	}

	cipher := strings.ToLower(cfg.Cipher)
	if cipher == "" {
		cipher = primitive.Default
	}

	if _, err := primitive.Lookup(cipher); err != nil {
		return header{}, fmt.Errorf("encrypt: %w", err)
	}

	params := header{Mode: mode, Cipher: cipher}

	if mode == modes.CFB {
		params.Segment = cfg.Segment
	} else if cfg.Segment != 0 {
		return header{}, fmt.Errorf("encrypt: %w: --segment only applies to CFB", modes.ErrConfig)
	}

	// Stream-like modes never pad.
	if mode.Aligned() {
		scheme, err := padding.Lookup(cfg.Padding)
		if err != nil {
			return header{}, fmt.Errorf("encrypt: %w", err)
		}

		if scheme != nil {
			params.Padding = scheme.Name()
		}
	}

	return params, nil
}

func (h header) withIV(iv []byte) header {
	h.IV = iv

	return h
}

// newContext builds a fresh mode context for one file.
func (p *Processor) newContext(h header) (*modes.Context, error) {
	factory, err := primitive.Lookup(h.Cipher)
	if err != nil {
		return nil, err //nolint:wrapcheck // already descriptive
	}

	opts := []modes.Option{modes.WithParallelism(p.cfg.Parallel)}

	if h.Mode.RequiresIV() {
		opts = append(opts, modes.WithIV(h.IV))
	}

	if h.Segment != 0 {
		opts = append(opts, modes.WithSegmentSize(h.Segment))
	}

	return modes.New(factory, p.key, h.Mode, opts...) //nolint:wrapcheck // callers add context
}

// ProcessFiles concurrently processes all files specified in the configuration.
// It encrypts or decrypts files based on the configuration settings.
func (p *Processor) ProcessFiles() (Stats, error) {
	var stats Stats

	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			p.report(result, &stats)
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			outPath := p.outputPath(file)

			read, size, err := p.processFile(file, outPath)
			if err != nil {
				p.results <- Result{Input: file, Error: err}

				return err
			}

			p.results <- Result{Input: file, Output: outPath, InputSize: read, OutputSize: size}

			return nil
		})
	}

	err := group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	if err != nil {
		return stats, fmt.Errorf("processing files: %w", err)
	}

	return stats, nil
}

// report prints one result and accumulates it into stats.
func (p *Processor) report(result Result, stats *Stats) {
	if result.Error != nil {
		stats.Errored++

		fmt.Fprintf(p.errOut, "Error processing %q: %v\n", result.Input, result.Error)

		return
	}

	stats.Processed++
	stats.InputSize += result.InputSize
	stats.OutputSize += result.OutputSize

	if !p.cfg.Quiet {
		fmt.Fprintf(p.out, "Processed %q -> %q\n", result.Input, result.Output)
	}

	if !p.cfg.Delete {
		return
	}

	if err := os.Remove(result.Input); err != nil {
		fmt.Fprintf(p.errOut, "Error deleting %q: %v\n", result.Input, err)
	} else if !p.cfg.Quiet {
		fmt.Fprintf(p.out, "Deleted %q\n", result.Input)
	}
}

// encrypt writes a fresh envelope followed by the ciphertext of reader.
// Every call draws a new random IV, so no two files share a keystream.
func (p *Processor) encrypt(reader io.Reader, writer io.Writer, isExec bool) (int64, error) {
	params := p.params
	params.Executable = isExec

	if params.Mode.RequiresIV() {
		params.IV = make([]byte, primitive.BlockSize)
		if _, err := io.ReadFull(rand.Reader, params.IV); err != nil {
			return 0, fmt.Errorf("generating IV: %w", err)
		}
	}

	ctx, err := p.newContext(params)
	if err != nil {
		return 0, fmt.Errorf("creating mode context: %w", err)
	}
	defer ctx.Finalize()

	if _, err := writer.Write(params.marshal()); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	scheme, err := padding.Lookup(params.Padding)
	if err != nil {
		return 0, fmt.Errorf("encrypt: %w", err)
	}

	return encryptStream(ctx, scheme, reader, writer)
}

// decrypt reads the envelope, rebuilds the mode context it describes and
// decrypts the payload. It returns whether the original file was executable.
func (p *Processor) decrypt(reader io.Reader, writer io.Writer) (bool, int64, error) {
	buffered := bufio.NewReaderSize(reader, defaultBufferSize)

	params, err := readHeader(buffered)
	if err != nil {
		return false, 0, err
	}

	scheme, err := padding.Lookup(params.Padding)
	if err != nil {
		return false, 0, fmt.Errorf("%w: %w", ErrProcessing, err)
	}

	ctx, err := p.newContext(params)
	if err != nil {
		return false, 0, fmt.Errorf("%w: %w", ErrProcessing, err)
	}
	defer ctx.Finalize()

	read, err := decryptStream(ctx, scheme, buffered, writer)

	return params.Executable, read, err
}

// processFile handles the encryption or decryption of a single file.
// Output goes to a temporary file that replaces outPath only on success.
func (p *Processor) processFile(filename, outPath string) (read, size int64, err error) {
	if filepath.Clean(filename) == filepath.Clean(outPath) {
		return 0, 0, errors.New("output path equals input path, check the configured suffixes") //nolint:err113
	}

	out, err := fileutil.Create(filename, outPath)
	if err != nil {
		return 0, 0, fmt.Errorf("preparing atomic write: %w", err)
	}
	defer out.Abort()

	inFile, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return 0, 0, fmt.Errorf("opening input file: %w", err)
	}
	defer inFile.Close()

	executable := out.Executable()

	if p.cfg.Decrypt {
		executable, read, err = p.decrypt(inFile, out)
		if err != nil {
			return 0, 0, fmt.Errorf("decrypting file: %w", err)
		}
	} else {
		read, err = p.encrypt(inFile, out, executable)
		if err != nil {
			return 0, 0, fmt.Errorf("encrypting file: %w", err)
		}
	}

	if err := inFile.Close(); err != nil {
		return 0, 0, fmt.Errorf("closing input file: %w", err)
	}

	size, err = out.Commit(executable, p.cfg.PreserveTimestamps)
	if err != nil {
		return 0, 0, fmt.Errorf("finalizing output: %w", err)
	}

	return read, size, nil
}

// outputPath generates the output file path based on the input filename
// and the configured suffixes for encryption/decryption.
func (p *Processor) outputPath(filename string) string {
	ext := p.cfg.Suffixes.Encrypt

	if p.cfg.Decrypt {
		filename = strings.TrimSuffix(filename, p.cfg.Suffixes.Encrypt)
		ext = p.cfg.Suffixes.Decrypt
	}

	return filepath.Join(filepath.Dir(filename),
		filepath.Base(filename)+ext)
}
