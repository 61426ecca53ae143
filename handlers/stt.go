package handlers

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"flavortable/config"

	speech "cloud.google.com/go/speech/apiv1"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"
)

const (
	maxAudioFileSize = 5 * 1024 * 1024 // 5MB
	allowedExtension = ".wav"
)

type waveHeader struct {
	RiffTag       [4]byte
	FileSize      uint32
	WaveTag       [4]byte
	FmtTag        [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataTag       [4]byte
	DataSize      uint32
}

func parseWaveHeader(data []byte) (*waveHeader, error) {
	if len(data) < 44 {
		return nil, errors.New("invalid WAV header length")
	}
	var header waveHeader
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if string(header.RiffTag[:]) != "RIFF" || string(header.WaveTag[:]) != "WAVE" {
		return nil, errors.New("not a RIFF/WAVE file")
	}
	// Google STT wants LINEAR16 mono; reject anything else up front rather
	// than letting the API produce a confusing error.
	if header.AudioFormat != 1 {
		return nil, errors.New("audio must be PCM (LINEAR16)")
	}
	if header.NumChannels != 1 {
		return nil, errors.New("audio must be mono")
	}
	return &header, nil
}

// TranscribeAudio accepts a mono PCM WAV upload and returns its transcript.
// The voice frontend posts here first, then sends the text to /chat.
func TranscribeAudio(c *gin.Context) {
	language := c.DefaultPostForm("language", "en-US")

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is required", "details": err.Error()})
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != allowedExtension {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid file type",
			"details": fmt.Sprintf("expected %s, got %s", allowedExtension, ext),
		})
		return
	}

	audioData, err := io.ReadAll(io.LimitReader(file, maxAudioFileSize))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read audio file", "details": err.Error()})
		return
	}

	wav, err := parseWaveHeader(audioData)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid audio file", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	client, err := speech.NewClient(ctx, option.WithCredentialsFile(config.AppConfig.GoogleServiceAccountFile))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initialize speech client", "details": err.Error()})
		return
	}
	defer client.Close()

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   int32(wav.SampleRate),
			LanguageCode:      language,
			AudioChannelCount: 1,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{
				Content: audioData,
			},
		},
	}

	resp, err := client.Recognize(ctx, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "speech recognition failed", "details": err.Error()})
		return
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		for _, alt := range result.Alternatives {
			transcript.WriteString(alt.Transcript + " ")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"transcription": strings.TrimSpace(transcript.String()),
	})
}
