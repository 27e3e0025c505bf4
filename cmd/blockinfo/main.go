package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/henridf/lightblock/blockchain"
	"github.com/henridf/lightblock/network"
	"github.com/henridf/lightblock/store"
)

type config struct {
	Network     string `long:"network" env:"BLOCKINFO_NETWORK" default:"mainnet" description:"network the blocks belong to [mainnet,ropsten,rinkeby]"`
	Checkpoints string `long:"checkpoints" env:"BLOCKINFO_CHECKPOINTS" description:"YAML checkpoint table replacing the built-in one for its network"`
	DB          string `long:"db" env:"BLOCKINFO_DB" description:"LevelDB directory to archive decoded blocks into"`
	Consistency bool   `long:"check-consistency" description:"check each block's header against the previous block"`
	Verbose     bool   `short:"v" long:"verbose" description:"log every block"`

	Args struct {
		Files []string `positional-arg-name:"FILE" required:"1"`
	} `positional-args:"yes"`
}

// newLogger writes human-readable lines to stderr, leaving stdout free.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		FormatLevel: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
		},
	}
	return zerolog.New(w).Level(level).With().Timestamp().Str("cmd", "blockinfo").Logger()
}

func main() {
	cfg := config{}
	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	log := newLogger(cfg.Verbose)
	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("Failed")
		os.Exit(1)
	}
}

func run(cfg config, log zerolog.Logger) error {
	net, err := network.Lookup(cfg.Network)
	if err != nil {
		return err
	}
	reg := network.Default()
	if cfg.Checkpoints != "" {
		fh, err := os.Open(cfg.Checkpoints)
		if err != nil {
			return fmt.Errorf("opening checkpoints: %w", err)
		}
		reg, err = reg.ApplyCheckpoints(fh)
		fh.Close()
		if err != nil {
			return err
		}
	}
	genesis, err := reg.GenesisHeader(net)
	if err != nil {
		return err
	}
	if cp, ok := reg.CheckpointLatest(net); ok {
		log.Info().Str("network", net.Name).Uint64("checkpoint", cp.Number).Str("hash", cp.Hash.Hex()).Msg("Latest checkpoint")
	}

	var st *store.Store
	if cfg.DB != "" {
		if st, err = store.Open(cfg.DB, log); err != nil {
			return err
		}
		defer st.Close()
	}

	files, err := openBlockFiles(cfg.Args.Files)
	if err != nil {
		return err
	}
	defer files.Close()
	r := newBlockReader(files)
	c := &checker{
		registry:    reg,
		network:     net,
		genesis:     genesis,
		consistency: cfg.Consistency,
		log:         log,
	}
	for {
		b, err := r.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		c.check(b)
		if st != nil {
			if err := st.Put(b); err != nil {
				return err
			}
		}
		c.advance(b)
	}
	log.Info().
		Int("blocks", r.count).
		Int("size (bytes)", r.cr.n).
		Int("invalid transaction roots", c.badRoots).
		Int("inconsistent headers", c.inconsistent).
		Msg("Done")
	return nil
}

type checker struct {
	registry    *network.Registry
	network     *network.Network
	genesis     *blockchain.Header
	consistency bool
	log         zerolog.Logger

	parent       *blockchain.Block
	badRoots     int
	inconsistent int
}

func (c *checker) check(b *blockchain.Block) {
	c.log.Debug().
		Uint64("number", b.Number()).
		Str("hash", b.Hash().Hex()).
		Int("transactions", b.TransactionCount()).
		Int("ommers", b.OmmerCount()).
		Msg("Block")

	if !b.TransactionsAreValid() {
		c.badRoots++
		c.log.Debug().Uint64("number", b.Number()).Msg("Transactions do not match header root")
	}
	if cp, ok := c.registry.CheckpointByNumber(c.network, b.Number()); ok && cp.Number == b.Number() && cp.Hash != b.Hash() {
		c.log.Warn().Uint64("number", b.Number()).Str("want", cp.Hash.Hex()).Str("have", b.Hash().Hex()).Msg("Checkpoint mismatch")
	}
	if c.consistency && c.parent != nil && b.Header().ParentHash == c.parent.Hash() {
		if err := b.Header().CheckConsistency(c.parent.Header(), c.parent.OmmerCount(), c.genesis); err != nil {
			c.inconsistent++
			c.log.Warn().Err(err).Msg("Inconsistent header")
		}
	}
}

// advance makes b the parent of the next block and releases the previous one.
func (c *checker) advance(b *blockchain.Block) {
	if c.parent != nil {
		c.parent.Release()
	}
	c.parent = b
}

// blockFiles reads the given files back to back as one block stream.
type blockFiles struct {
	io.Reader
	files []*os.File
}

func openBlockFiles(names []string) (*blockFiles, error) {
	bf := &blockFiles{}
	readers := make([]io.Reader, 0, len(names))
	for _, name := range names {
		fh, err := os.Open(name)
		if err != nil {
			bf.Close()
			return nil, err
		}
		bf.files = append(bf.files, fh)
		readers = append(readers, fh)
	}
	bf.Reader = io.MultiReader(readers...)
	return bf, nil
}

func (bf *blockFiles) Close() error {
	var first error
	for _, fh := range bf.files {
		if err := fh.Close(); err != nil && first == nil {
			first = err
		}
	}
	bf.files = nil
	return first
}

// byteCounter counts the bytes read through it.
type byteCounter struct {
	r io.Reader
	n int
}

func (c *byteCounter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

type blockReader struct {
	stream *rlp.Stream
	cr     *byteCounter
	count  int
}

func newBlockReader(r io.Reader) *blockReader {
	cr := &byteCounter{r: r}
	return &blockReader{
		stream: rlp.NewStream(cr, 0),
		cr:     cr,
	}
}

func (r *blockReader) next() (*blockchain.Block, error) {
	if _, _, err := r.stream.Kind(); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("reading kind %d: %v", r.count, err)
	}
	var b blockchain.Block
	if err := r.stream.Decode(&b); err != nil {
		return nil, fmt.Errorf("decoding RLP block %d: %w", r.count, err)
	}
	r.count++
	return &b, nil
}
