// Kestrel - a real-time conversational voice-assistant pipeline.
//
// Four goroutines, wired by this file: audio capture (malgo's own callback
// plus Capturer.processLoop) drives VADGate and the UtteranceAssembler
// inline; dialogue.Manager.Run owns ASR and turn bookkeeping; llm.Streamer
// and tts.Coordinator each own the remaining two.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/kestrelvoice/kestrel/internal/asr"
	"github.com/kestrelvoice/kestrel/internal/audio"
	"github.com/kestrelvoice/kestrel/internal/config"
	"github.com/kestrelvoice/kestrel/internal/dialogue"
	"github.com/kestrelvoice/kestrel/internal/llm"
	"github.com/kestrelvoice/kestrel/internal/pipeline"
	"github.com/kestrelvoice/kestrel/internal/tts"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	log.Println("🎤 Kestrel voice assistant starting...")
	log.Printf("⚡ STT acceleration: %s, TTS acceleration: %s", cfg.STTProvider, cfg.TTSProvider)
	log.Printf("🔊 TTS voice: %s (speaker %d)", cfg.TTSVoice, cfg.TTSSpeakerID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Println("🧠 Loading speech recognition models...")
	vad, err := pipeline.BuildSherpaVAD(cfg.VADModel, cfg.VadThreshold, cfg.VADSilenceDuration, cfg.SampleRate, cfg.VADThreads, cfg.Verbose)
	if err != nil {
		log.Fatalf("Failed to create VAD: %v", err)
	}
	defer vad.Close()

	asrProvider, err := asr.BuildSherpaProvider(cfg.WhisperEncoder, cfg.WhisperDecoder, cfg.WhisperTokens, cfg.STTLanguage, cfg.STTProvider, cfg.SampleRate, cfg.STTThreads, cfg.Verbose)
	if err != nil {
		log.Fatalf("Failed to create ASR provider: %v", err)
	}
	defer asrProvider.Close()
	log.Println("✅ Speech recognition ready")

	log.Println("🔊 Loading text-to-speech models...")
	ttsProvider, err := tts.BuildSherpaProvider(tts.SherpaTTSConfig{
		Model:      cfg.TTSModel,
		Voices:     cfg.TTSVoices,
		Tokens:     cfg.TTSTokens,
		DataDir:    cfg.TTSData,
		Lexicon:    cfg.TTSLexicon,
		Language:   cfg.TTSLanguage,
		Provider:   cfg.TTSProvider,
		TTSThreads: cfg.TTSThreads,
		Debug:      cfg.Verbose,
	})
	if err != nil {
		log.Fatalf("Failed to create TTS provider: %v", err)
	}
	defer ttsProvider.Close()
	log.Println("✅ Text-to-speech ready")

	synth := tts.NewSynthesizer(ttsProvider, cfg.TTSSpeakerID, cfg.TTSSpeed, cfg.Verbose)

	player, err := audio.NewPlayer(tts.KokoroSampleRate, cfg.AudioBufferMs, nil)
	if err != nil {
		log.Fatalf("Failed to create audio player: %v", err)
	}
	defer player.Close()

	// InitialMessages[0] is the system prompt; everything after alternates
	// user/assistant starting at user, matching the Llama3Template's .role
	// iteration and the DefaultConfig() seed ["system prompt", ""].
	seed := make([]dialogue.Turn, 0, len(cfg.InitialMessages))
	for i, content := range cfg.InitialMessages {
		if content == "" {
			continue
		}
		var role dialogue.Role
		switch {
		case i == 0:
			role = dialogue.RoleSystem
		case i%2 == 1:
			role = dialogue.RoleUser
		default:
			role = dialogue.RoleAssistant
		}
		seed = append(seed, dialogue.Turn{Role: role, Content: content})
	}
	transcript := dialogue.NewTranscript(seed)

	frameSamples := cfg.SampleRate * cfg.VADSizeMs / 1000
	gapLimit := cfg.PauseLimitMs / cfg.VADSizeMs
	preRollCapacity := cfg.BufferSizeMs / cfg.VADSizeMs

	userText := make(chan string, 5)
	sentences := make(chan string, 16)
	utterances := make(chan pipeline.Utterance, 2)

	preRoll := pipeline.NewPreRollBuffer(preRollCapacity)
	session := pipeline.NewSession(player, func() {
		preRoll.Clear()
		if cfg.Verbose {
			log.Println("[pipeline] entered listening")
		}
	})

	vadGate := pipeline.NewVADGate(vad, cfg.VadThreshold)
	assembler := pipeline.NewAssembler(preRoll, session, gapLimit, func(u pipeline.Utterance) {
		select {
		case utterances <- u:
		case <-ctx.Done():
		}
	})

	manager := dialogue.NewManager(transcript, session, userText, cfg.Verbose)
	stage := asr.NewStage(asrProvider, cfg.STTHallucinations, cfg.WakeWord, cfg.SimilarityThreshold)

	backend, stopBackend, err := buildLLMBackend(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create LLM backend: %v", err)
	}
	if stopBackend != nil {
		defer stopBackend()
	}

	streamer := llm.NewStreamer(backend, session, transcript, cfg.Llama3Template, cfg.LLMStopwords, cfg.AIOutputToIgnore, userText, sentences, cfg.Verbose)
	coordinator := tts.NewCoordinator(synth, &playerAdapter{player}, session, manager, sentences, cfg.Verbose)

	var frameBuf []float32
	capturer, err := audio.NewCapturer(cfg.SampleRate, func(samples []float32) {
		frameBuf = append(frameBuf, samples...)
		for len(frameBuf) >= frameSamples {
			frame := make(pipeline.Frame, frameSamples)
			copy(frame, frameBuf[:frameSamples])
			frameBuf = frameBuf[frameSamples:]
			assembler.Accept(vadGate.Process(frame))
		}
	})
	if err != nil {
		log.Fatalf("%v: %v", pipeline.ErrAudioDeviceUnavailable, err)
	}
	defer capturer.Close()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); manager.Run(ctx, utterances, stage, capturer) }()
	go func() { defer wg.Done(); streamer.Run(ctx) }()
	go func() { defer wg.Done(); coordinator.Run(ctx) }()

	playStartAnnouncement(cfg, synth, &playerAdapter{player})

	if err := capturer.Start(); err != nil {
		log.Fatalf("%v: %v", pipeline.ErrAudioDeviceUnavailable, err)
	}

	if cfg.WakeWord != "" {
		log.Printf("🎙️ Listening for wake word: %q", cfg.WakeWord)
	} else {
		log.Println("🎙️ Listening... (speak to interact, Ctrl+C to quit)")
	}

	<-sigChan
	log.Println("🛑 Shutting down...")

	capturer.Stop()
	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("✅ Shutdown complete")
	case <-time.After(5 * time.Second):
		log.Println("⚠️ Shutdown timeout, forcing exit")
	}
}

// playerAdapter satisfies tts.Playback by translating a tts.Clip into the
// audio.AudioBuffer shape audio.Player actually plays. A thin wrapper here,
// rather than a method on audio.Player itself, keeps internal/audio free of
// any dependency on internal/tts.
type playerAdapter struct {
	*audio.Player
}

func (a *playerAdapter) Play(clip tts.Clip) error {
	return a.Player.Play(audio.AudioBuffer{Samples: clip.PCM, SampleRate: clip.SampleRate})
}

// buildLLMBackend selects and constructs the configured llm.Backend. For
// LLMProviderLlamaServer with LlamaServerExternal == false it also spawns
// and health-checks a child llama-server process, returning a stop function
// the caller must defer.
func buildLLMBackend(ctx context.Context, cfg *config.Config) (llm.Backend, func(), error) {
	switch cfg.LLMProvider {
	case config.LLMProviderOllama:
		log.Printf("🔗 Using Ollama backend at %s (model: %s)", cfg.OllamaURL, cfg.OllamaModel)
		backend, err := llm.NewOllamaBackend(cfg.OllamaURL, cfg.OllamaModel)
		if err != nil {
			return nil, nil, err
		}
		return backend, nil, nil

	case config.LLMProviderLlamaServer:
		var stop func()
		if !cfg.LlamaServerExternal {
			log.Printf("🔗 Spawning llama-server on port %d (model: %s)", cfg.LlamaServerPort, cfg.LlamaServerModel)
			healthURL := fmt.Sprintf("http://localhost:%d/health", cfg.LlamaServerPort)
			child, err := llm.StartChildProcess(ctx, cfg.LlamaServerPath, cfg.LlamaServerModel, cfg.LlamaServerPort, healthURL, 60*time.Second)
			if err != nil {
				return nil, nil, err
			}
			stop = func() {
				if err := child.Stop(); err != nil {
					log.Printf("[llm] warn: stopping llama-server: %v", err)
				}
			}
		} else {
			log.Printf("🔗 Using external llama-server at %s", cfg.LlamaServerURL)
		}
		return llm.NewRawServerBackend(cfg.LlamaServerURL, cfg.LlamaServerHeaders, nil), stop, nil

	default:
		return nil, nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
}

// playStartAnnouncement synthesizes and plays Config.StartAnnouncement once
// before the pipeline starts listening, per glados.py.__init__'s startup
// greeting (dropped by spec.md's distillation, restored here).
func playStartAnnouncement(cfg *config.Config, synth *tts.Synthesizer, playback tts.Playback) {
	if cfg.StartAnnouncement == "" {
		return
	}
	clip, err := synth.Synthesize(cfg.StartAnnouncement)
	if err != nil {
		log.Printf("[kestrel] warn: synthesizing start announcement: %v", err)
		return
	}
	if err := playback.Play(clip); err != nil {
		log.Printf("[kestrel] warn: playing start announcement: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ltime)
	log.SetOutput(os.Stdout)
}
