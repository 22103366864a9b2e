// Package berwire implements the BER length framing that precedes LDAP
// message decoding: reading exactly the number of bytes
// one self-delimited PDU occupies before handing the buffer to the
// external BER/ASN.1 codec (github.com/lor00x/goldap/message), and
// writing an encoded PDU back out in full.
package berwire

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/lor00x/goldap/message"
)

// maxLongFormLengthBytes bounds how many long-form length bytes this
// framer will read before giving up, comfortably past a K=4 long-form
// length (a payload over 65535 bytes) while still refusing to read an
// unbounded header for a corrupt stream.
const maxLongFormLengthBytes = 8

// ReadMessage reads exactly one self-delimited LDAP PDU from r and
// decodes it: read the tag and first length byte, read any long-form
// length bytes, read the payload, then decode. Every read is exact
// (io.ReadFull) so a partial PDU or a short read surfaces as an error
// instead of silently consuming bytes that belong to the next message on
// the stream.
func ReadMessage(r io.Reader) (*message.LDAPMessage, error) {
	buf, err := readFramedPDU(r)
	if err != nil {
		return nil, err
	}
	decoded := message.NewBytes(0, buf)
	msg, err := message.ReadLDAPMessage(decoded)
	if err != nil {
		return nil, fmt.Errorf("berwire: decode LDAP message: %w", err)
	}
	return &msg, nil
}

// readFramedPDU performs the three bounded reads (tag+length byte,
// long-form length bytes, payload) and returns the concatenated
// tag+length+payload buffer, without decoding it. Split out from
// ReadMessage so the framing boundary itself, reading exactly this many
// bytes and no more, is testable independent of the external BER codec.
func readFramedPDU(r io.Reader) ([]byte, error) {
	header := make([]byte, 2)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("berwire: read tag and length: %w", err)
	}

	lengthByte := header[1]
	var contentLength int
	if lengthByte&0x80 == 0 {
		// Short form: the byte itself is the length.
		contentLength = int(lengthByte)
	} else {
		k := int(lengthByte & 0x7f)
		if k == 0 || k > maxLongFormLengthBytes {
			return nil, fmt.Errorf("berwire: invalid long-form length: %d subsequent bytes", k)
		}
		lengthBytes := make([]byte, k)
		if _, err := io.ReadFull(r, lengthBytes); err != nil {
			return nil, fmt.Errorf("berwire: read long-form length bytes: %w", err)
		}
		header = append(header, lengthBytes...)

		padded := make([]byte, 8)
		copy(padded[8-k:], lengthBytes)
		length := binary.BigEndian.Uint64(padded)
		if length > uint64(1)<<31 {
			return nil, fmt.Errorf("berwire: PDU length %d exceeds sane bound", length)
		}
		contentLength = int(length)
	}

	payload := make([]byte, contentLength)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("berwire: read %d-byte PDU payload: %w", contentLength, err)
	}

	return append(header, payload...), nil
}

// WriteMessage serialises msg to BER and writes the full buffer,
// flushing the underlying writer where possible.
func WriteMessage(w io.Writer, msg *message.LDAPMessage) error {
	encoded, err := msg.Write()
	if err != nil {
		return fmt.Errorf("berwire: encode LDAP message: %w", err)
	}
	if _, err := w.Write(encoded.Bytes()); err != nil {
		return fmt.Errorf("berwire: write LDAP message: %w", err)
	}
	if f, ok := w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}
