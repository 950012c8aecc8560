package logic

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/Varbin/xtea3/pkg/modes"
	"github.com/Varbin/xtea3/pkg/primitive"
)

// maxMessageSize bounds the random messages of a self-check.
const maxMessageSize = 64 * 1024

// ErrSelfCheck is returned when at least one round trip failed.
var ErrSelfCheck = errors.New("self-check failed")

// checkCase is one configuration exercised by the self-check.
type checkCase struct {
	cipher  string
	mode    modes.Mode
	segment int
}

func (c checkCase) String() string {
	if c.segment != 0 {
		return fmt.Sprintf("%s/%s-%d", c.cipher, c.mode, c.segment)
	}

	return fmt.Sprintf("%s/%s", c.cipher, c.mode)
}

// checkCases lists every mode for every primitive, plus byte-wise CFB.
func checkCases() []checkCase {
	var cases []checkCase

	for _, cipher := range primitive.Names() {
		for _, mode := range modes.Modes() {
			cases = append(cases, checkCase{cipher: cipher, mode: mode})
		}

		cases = append(cases, checkCase{cipher: cipher, mode: modes.CFB, segment: 8})
	}

	return cases
}

// SelfCheck encrypts and decrypts iterations random messages for every mode
// and primitive on independent contexts running concurrently. Failures are
// written to w; a summary follows unless quiet is set.
func SelfCheck(w io.Writer, iterations, parallel int, quiet bool) error {
	if iterations < 1 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrSelfCheck, iterations)
	}

	if parallel < 1 {
		return fmt.Errorf("%w: parallel must be positive, got %d", ErrSelfCheck, parallel)
	}

	start := time.Now()

	var (
		processed atomic.Int64
		failed    atomic.Int64
	)

	failures := make(chan string, parallel)
	printed := make(chan struct{})

	go func() {
		defer close(printed)

		for failure := range failures {
			fmt.Fprintln(w, failure)
		}
	}()

	group := errgroup.Group{}
	group.SetLimit(parallel)

	for _, tc := range checkCases() {
		for i := range iterations {
			group.Go(func() error {
				size, err := roundTrip(tc)
				if err != nil {
					failed.Add(1)
					failures <- fmt.Sprintf("FAIL %s #%d: %v", tc, i, err)

					return nil
				}

				processed.Add(int64(size))

				return nil
			})
		}
	}

	_ = group.Wait() // workers report through the channel

	close(failures)
	<-printed

	elapsed := time.Since(start)

	if !quiet {
		fmt.Fprintf(w, "%d configurations x %d messages, %s in %s (%s/s)\n",
			len(checkCases()), iterations,
			humanize.IBytes(uint64(processed.Load())), //nolint:gosec // non-negative
			elapsed.Round(time.Millisecond),
			humanize.IBytes(throughput(processed.Load(), elapsed)))
	}

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%w: %d round trips", ErrSelfCheck, n)
	}

	return nil
}

// roundTrip encrypts a random message under a random key and IV, decrypts it
// in two chunks on a second context and compares. It returns the message size.
func roundTrip(tc checkCase) (int, error) {
	factory, err := primitive.Lookup(tc.cipher)
	if err != nil {
		return 0, err //nolint:wrapcheck // descriptive already
	}

	key := make([]byte, primitive.KeySize)
	iv := make([]byte, primitive.BlockSize)

	if _, err := rand.Read(key); err != nil {
		return 0, fmt.Errorf("generating key: %w", err)
	}

	if _, err := rand.Read(iv); err != nil {
		return 0, fmt.Errorf("generating IV: %w", err)
	}

	size, err := randomSize(tc.mode)
	if err != nil {
		return 0, err
	}

	message := make([]byte, size)
	if _, err := rand.Read(message); err != nil {
		return 0, fmt.Errorf("generating message: %w", err)
	}

	opts := []modes.Option{modes.WithIV(iv)}
	if tc.segment != 0 {
		opts = append(opts, modes.WithSegmentSize(tc.segment))
	}

	enc, err := modes.New(factory, key, tc.mode, opts...)
	if err != nil {
		return 0, fmt.Errorf("creating context: %w", err)
	}

	ciphertext, err := enc.Encrypt(message)
	if err != nil {
		return 0, fmt.Errorf("encrypting: %w", err)
	}

	dec, err := modes.New(factory, key, tc.mode, opts...)
	if err != nil {
		return 0, fmt.Errorf("creating context: %w", err)
	}

	split := size / 2
	if tc.mode.Aligned() {
		split -= split % primitive.BlockSize
	}

	first, err := dec.Decrypt(ciphertext[:split])
	if err != nil {
		return 0, fmt.Errorf("decrypting: %w", err)
	}

	second, err := dec.Decrypt(ciphertext[split:])
	if err != nil {
		return 0, fmt.Errorf("decrypting: %w", err)
	}

	if !bytes.Equal(append(first, second...), message) {
		return 0, fmt.Errorf("round trip of %d bytes differs", size)
	}

	return size, nil
}

// randomSize picks a message length, block aligned where the mode needs it.
func randomSize(mode modes.Mode) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(maxMessageSize))
	if err != nil {
		return 0, fmt.Errorf("generating size: %w", err)
	}

	size := int(n.Int64())
	if mode.Aligned() {
		size -= size % primitive.BlockSize
	}

	return size, nil
}
