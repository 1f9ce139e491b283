package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"g711-node/internal/audio/config"
	"g711-node/internal/audio/pipeline"
	"g711-node/internal/driver"
	"g711-node/internal/node"
	"g711-node/pkg/logger"
	"g711-node/pkg/system"

	"github.com/rs/zerolog/log"
)

// loadEnv loads environment variables from a .env file if not already set
func loadEnv() {
	if os.Getenv("LOG_LEVEL") == "" { // means .env not loaded
		if err := system.LoadEnv(".env"); err != nil {
			// .env is optional, defaults apply without it
			return
		}
	}
}

func main() {
	mode := flag.String("mode", "transcode", "serve | transcode | play | record")
	law := flag.String("law", "ulaw", "companding law: ulaw | alaw")
	codecName := flag.String("codec", "pcmu", "codec for play/record: pcmu | pcma | opus")
	op := flag.String("op", "encode", "transcode direction: encode | decode")
	inPath := flag.String("in", "-", "input file, - for stdin")
	outPath := flag.String("out", "-", "output file, - for stdout")
	remote := flag.Bool("remote", false, "transcode on a discovered codec node instead of in-process")
	dropSilence := flag.Bool("drop-silence", false, "skip silent frames while recording")
	flag.Parse()

	loadEnv()
	logger.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch *mode {
	case "serve":
		err = runServe(ctx, *law)
	case "transcode":
		err = runTranscode(ctx, *law, *op, *inPath, *outPath, *remote)
	case "play":
		err = runPlay(ctx, *codecName, *inPath)
	case "record":
		err = runRecord(ctx, *codecName, *outPath, *dropSilence)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Str("mode", *mode).Msg("Exited with error")
	}
}

func runServe(ctx context.Context, law string) error {
	drv, err := driver.New(driver.Law(law))
	if err != nil {
		return err
	}
	err = node.New(drv).Serve(ctx)
	if ctx.Err() != nil {
		return nil // clean shutdown on signal
	}
	return err
}

func opCommand(op string) (byte, error) {
	switch op {
	case "encode":
		return driver.CmdEncode, nil
	case "decode":
		return driver.CmdDecode, nil
	}
	return 0, fmt.Errorf("unknown op %q", op)
}

func runTranscode(ctx context.Context, law, op, inPath, outPath string, remote bool) error {
	cmd, err := opCommand(op)
	if err != nil {
		return err
	}
	payload, err := readInput(inPath)
	if err != nil {
		return err
	}

	session := system.GenerateSessionID()
	log.Info().
		Str("session", session).
		Str("op", op).
		Int("bytes", len(payload)).
		Bool("remote", remote).
		Msg("Transcoding")

	var result []byte
	if remote {
		client, err := node.Dial(ctx)
		if err != nil {
			return err
		}
		defer client.Close()
		result, err = client.Control(cmd, payload)
		if err != nil {
			return err
		}
	} else {
		drv, err := driver.New(driver.Law(law))
		if err != nil {
			return err
		}
		result, err = drv.Control(cmd, payload)
		if err != nil {
			return err
		}
	}

	log.Info().Str("session", session).Int("bytes", len(result)).Msg("Transcode done")
	return writeOutput(outPath, result)
}

// runPlay reads a companded G.711 file and plays it on the default output
// device at 48kHz, one 20ms frame per tick.
func runPlay(ctx context.Context, codecName, inPath string) error {
	cfg, ok := config.ByName(codecName)
	if !ok {
		return fmt.Errorf("unknown codec %q", codecName)
	}
	if cfg.Type == config.AudioCodecOpus {
		return fmt.Errorf("play mode reads raw companded frames, opus files are not framed")
	}
	data, err := readInput(inPath)
	if err != nil {
		return err
	}

	player, err := pipeline.NewPlayer(cfg, config.SampleRateOpus)
	if err != nil {
		return err
	}
	defer player.Close()
	go player.Run()

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for off := 0; off < len(data); off += cfg.FrameSamples {
		end := min(off+cfg.FrameSamples, len(data))
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			player.InPayloads <- data[off:end]
		}
	}
	// let the jitter buffer drain before tearing the device down
	time.Sleep(time.Duration(config.JitterBufferSize*3*20) * time.Millisecond)
	return nil
}

// runRecord captures the default input device, encodes each 20ms frame and
// appends the payloads to the output file until interrupted.
func runRecord(ctx context.Context, codecName, outPath string, dropSilence bool) error {
	cfg, ok := config.ByName(codecName)
	if !ok {
		return fmt.Errorf("unknown codec %q", codecName)
	}
	out, err := openOutput(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	rec, err := pipeline.NewRecorder(cfg, dropSilence)
	if err != nil {
		return err
	}
	defer rec.Close()

	log.Info().Str("codec", codecName).Msg("Recording, Ctrl-C to stop")
	for {
		select {
		case <-ctx.Done():
			return nil
		case payload, ok := <-rec.Payloads():
			if !ok {
				return nil
			}
			if _, err := out.Write(payload); err != nil {
				return err
			}
		}
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return os.Stdout, nil
	}
	return os.Create(path)
}

func writeOutput(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = out.Write(data)
	return err
}
