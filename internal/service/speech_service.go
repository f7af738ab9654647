package service

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"google.golang.org/api/option"
)

const (
	MsgSpeechNotUnderstood = "Speech could not be understood. Please try speaking more clearly."
	speechSampleRate       = 16000
	defaultAudioFormat     = "webm"
)

// ErrSpeechNotUnderstood is returned by a Recognizer that heard no words.
var ErrSpeechNotUnderstood = errors.New("speech could not be understood")

type SpeechResult struct {
	Success bool    `json:"success"`
	Text    string  `json:"text"`
	Error   *string `json:"error"`
}

func speechFailure(msg string) SpeechResult {
	return SpeechResult{Success: false, Text: "", Error: &msg}
}

// AudioTranscoder converts arbitrary audio into 16 kHz mono 16-bit PCM WAV.
// An empty format asks the transcoder to detect the container itself.
type AudioTranscoder interface {
	ToWAV(ctx context.Context, data []byte, format string) ([]byte, error)
}

// Recognizer turns LINEAR16 PCM into text.
type Recognizer interface {
	Recognize(ctx context.Context, pcm []byte, sampleRate int) (string, error)
}

// ffmpeg demuxer names for the formats clients are known to send.
var audioDemuxers = map[string]string{
	"wav":  "wav",
	"mp3":  "mp3",
	"ogg":  "ogg",
	"webm": "matroska",
}

type FFmpegTranscoder struct {
	Path string
}

func NewFFmpegTranscoder(path string) *FFmpegTranscoder {
	if path == "" {
		path = "ffmpeg"
	}
	return &FFmpegTranscoder{Path: path}
}

func (t *FFmpegTranscoder) ToWAV(ctx context.Context, data []byte, format string) ([]byte, error) {
	in, err := os.CreateTemp("", "speech-in-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	inPath := in.Name()
	defer os.Remove(inPath)

	if _, err := in.Write(data); err != nil {
		in.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	in.Close()

	outPath := inPath + ".wav"
	defer os.Remove(outPath)

	args := []string{"-hide_banner", "-loglevel", "error", "-y"}
	if demuxer, ok := audioDemuxers[format]; ok {
		args = append(args, "-f", demuxer)
	}
	args = append(args, "-i", inPath,
		"-ac", "1",
		"-ar", fmt.Sprint(speechSampleRate),
		"-acodec", "pcm_s16le",
		"-f", "wav", outPath)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.Path, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return os.ReadFile(outPath)
}

type GoogleRecognizer struct {
	client   *speech.Client
	language string
}

// NewGoogleRecognizer uses the API key when given, otherwise application
// default credentials.
func NewGoogleRecognizer(ctx context.Context, apiKey, language string) (*GoogleRecognizer, error) {
	var opts []option.ClientOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}
	if language == "" {
		language = "en-US"
	}
	return &GoogleRecognizer{client: client, language: language}, nil
}

func (r *GoogleRecognizer) Close() error {
	return r.client.Close()
}

func (r *GoogleRecognizer) Recognize(ctx context.Context, pcm []byte, sampleRate int) (string, error) {
	resp, err := r.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz: int32(sampleRate),
			LanguageCode:    r.language,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: pcm},
		},
	})
	if err != nil {
		return "", err
	}

	var parts []string
	for _, result := range resp.GetResults() {
		alts := result.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		if t := strings.TrimSpace(alts[0].GetTranscript()); t != "" {
			parts = append(parts, t)
		}
	}
	if len(parts) == 0 {
		return "", ErrSpeechNotUnderstood
	}
	return strings.Join(parts, " "), nil
}

type SpeechService struct {
	transcoder        AudioTranscoder
	recognizer        Recognizer
	calibrationWindow time.Duration
}

func NewSpeechService(transcoder AudioTranscoder, recognizer Recognizer, calibrationWindow time.Duration) *SpeechService {
	return &SpeechService{
		transcoder:        transcoder,
		recognizer:        recognizer,
		calibrationWindow: calibrationWindow,
	}
}

// FormatFromFilename returns the lower-cased extension, or webm when the
// upload has none.
func FormatFromFilename(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return defaultAudioFormat
	}
	return ext
}

// Transcribe never reports recognition problems as errors; those come back
// as an unsuccessful SpeechResult. The error is reserved for faults of the
// service itself.
func (s *SpeechService) Transcribe(ctx context.Context, data []byte, format string) (SpeechResult, error) {
	if s.recognizer == nil {
		return SpeechResult{}, fmt.Errorf("speech recognizer is not configured")
	}
	format = strings.ToLower(format)
	log.Printf("Processing audio data of size: %d bytes, format: %s", len(data), format)

	buf, err := s.decode(ctx, data, format)
	if err != nil {
		log.Printf("Error converting audio format: %v", err)
		fallback, fbErr := s.decode(ctx, data, defaultAudioFormat)
		if fbErr != nil {
			log.Printf("Fallback conversion also failed: %v", fbErr)
			return speechFailure(fmt.Sprintf("Unsupported audio format: %s. Error: %v", format, err)), nil
		}
		buf = fallback
	}

	samples := s.skipCalibration(buf)
	if len(samples) == 0 {
		return speechFailure(MsgSpeechNotUnderstood), nil
	}

	text, err := s.recognizer.Recognize(ctx, pcmBytes(samples), buf.Format.SampleRate)
	if errors.Is(err, ErrSpeechNotUnderstood) {
		return speechFailure(MsgSpeechNotUnderstood), nil
	}
	if err != nil {
		log.Printf("Speech recognition request error: %v", err)
		return speechFailure(fmt.Sprintf("Could not request results from Google Speech Recognition service: %v", err)), nil
	}

	return SpeechResult{Success: true, Text: text}, nil
}

// decode forces the container for known formats and lets ffmpeg probe the rest.
func (s *SpeechService) decode(ctx context.Context, data []byte, format string) (*audio.IntBuffer, error) {
	forced := ""
	if _, ok := audioDemuxers[format]; ok {
		forced = format
	}
	wavData, err := s.transcoder.ToWAV(ctx, data, forced)
	if err != nil {
		return nil, err
	}

	dec := wav.NewDecoder(bytes.NewReader(wavData))
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("transcoder produced an invalid WAV stream")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM: %w", err)
	}
	if buf.Format == nil || buf.Format.SampleRate == 0 {
		return nil, fmt.Errorf("WAV stream has no sample rate")
	}
	return buf, nil
}

// skipCalibration consumes the ambient-noise window at the head of the clip
// and returns what remains.
func (s *SpeechService) skipCalibration(buf *audio.IntBuffer) []int {
	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	n := int(s.calibrationWindow.Seconds()*float64(buf.Format.SampleRate)) * channels
	if n > len(buf.Data) {
		n = len(buf.Data)
	}
	if n > 0 {
		log.Printf("Ambient noise floor: %.4f RMS over %s", rms(buf.Data[:n]), s.calibrationWindow)
	}
	return buf.Data[n:]
}

func rms(samples []int) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range samples {
		f := float64(v) / math.MaxInt16
		sum += f * f
	}
	return math.Sqrt(sum / float64(len(samples)))
}

func pcmBytes(samples []int) []byte {
	out := make([]byte, len(samples)*2)
	for i, v := range samples {
		if v > math.MaxInt16 {
			v = math.MaxInt16
		} else if v < math.MinInt16 {
			v = math.MinInt16
		}
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(v)))
	}
	return out
}
