package service

import (
	"encoding/binary"
	"io"

	"github.com/allisson/kms/internal/errors"
	kmsService "github.com/allisson/kms/internal/kms/service"
)

const (
	// DefaultChunkSize is the plaintext chunk size used for streaming
	// encryption when the caller does not specify one.
	DefaultChunkSize = 1 << 20

	frameHeaderSize = 4
)

// ErrInvalidFrame indicates a stream frame with an out-of-range length.
var ErrInvalidFrame = errors.New("invalid ciphertext frame")

// StreamCipher encrypts and decrypts payloads of arbitrary size in
// fixed-size chunks, each sealed independently with a fresh nonce. Frames
// on the wire are a 4-byte big-endian length followed by the sealed chunk.
type StreamCipher struct {
	chunkSize int
}

// NewStreamCipher returns a StreamCipher with the given plaintext chunk
// size. A non-positive size falls back to DefaultChunkSize.
func NewStreamCipher(chunkSize int) *StreamCipher {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &StreamCipher{chunkSize: chunkSize}
}

// maxFrameSize is the largest legal sealed frame for this cipher's chunk
// size: a full plaintext chunk plus the nonce and tag overhead. Decrypt
// rejects anything larger so a corrupted header cannot trigger a huge
// allocation.
func (s *StreamCipher) maxFrameSize() int {
	return s.chunkSize + kmsService.MinBlobSize
}

// Encrypt reads plaintext from r, seals it chunk by chunk under the data
// key, and writes length-framed ciphertext to w.
func (s *StreamCipher) Encrypt(w io.Writer, r io.Reader, dataKey []byte) error {
	cipher, err := kmsService.NewAESGCM(dataKey)
	if err != nil {
		return err
	}

	buf := make([]byte, s.chunkSize)
	header := make([]byte, frameHeaderSize)
	for {
		n, readErr := io.ReadFull(r, buf)
		if n > 0 {
			sealed, err := kmsService.SealBlob(cipher, buf[:n], nil)
			if err != nil {
				return err
			}

			binary.BigEndian.PutUint32(header, uint32(len(sealed)))
			if _, err := w.Write(header); err != nil {
				return errors.Wrap(err, "failed to write frame header")
			}
			if _, err := w.Write(sealed); err != nil {
				return errors.Wrap(err, "failed to write frame")
			}
		}

		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			return nil
		}
		if readErr != nil {
			return errors.Wrap(readErr, "failed to read plaintext")
		}
	}
}

// Decrypt reads length-framed ciphertext from r, opens each chunk under
// the data key, and writes the recovered plaintext to w. Any tampered or
// truncated frame aborts the stream.
func (s *StreamCipher) Decrypt(w io.Writer, r io.Reader, dataKey []byte) error {
	cipher, err := kmsService.NewAESGCM(dataKey)
	if err != nil {
		return err
	}

	header := make([]byte, frameHeaderSize)
	for {
		if _, err := io.ReadFull(r, header); err != nil {
			if err == io.EOF {
				return nil
			}
			return errors.Wrap(err, "failed to read frame header")
		}

		frameLen := binary.BigEndian.Uint32(header)
		if frameLen < kmsService.MinBlobSize || frameLen > uint32(s.maxFrameSize()) {
			return ErrInvalidFrame
		}

		frame := make([]byte, frameLen)
		if _, err := io.ReadFull(r, frame); err != nil {
			return errors.Wrap(err, "failed to read frame")
		}

		plaintext, err := kmsService.OpenBlob(cipher, frame, nil)
		if err != nil {
			return err
		}

		if _, err := w.Write(plaintext); err != nil {
			return errors.Wrap(err, "failed to write plaintext")
		}
	}
}
