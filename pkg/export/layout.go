package export

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"time"

	"github.com/golang/snappy"

	"github.com/dd0wney/graphlens/pkg/graph"
	"github.com/dd0wney/graphlens/pkg/simulation"
)

// Layout file framing.
// Format: [Magic:4][Version:1][DataLen:4][Data:N][Checksum:4][Timestamp:8]
// Data is a snappy-compressed JSON VizData document; the checksum covers
// the compressed bytes.
const (
	layoutMagic   uint32 = 0x474C4C31 // "GLL1"
	layoutVersion byte   = 1
)

var (
	// ErrBadMagic means the file is not a layout file.
	ErrBadMagic = errors.New("not a layout file")
	// ErrBadVersion means the layout format version is unsupported.
	ErrBadVersion = errors.New("unsupported layout version")
	// ErrChecksumMismatch means the payload is corrupt.
	ErrChecksumMismatch = errors.New("layout checksum mismatch")
)

// SaveLayout writes the laid-out graph to a compressed binary file.
func SaveLayout(path string, snap *graph.Snapshot, positions map[string]simulation.Position) error {
	raw, err := json.Marshal(BuildVizData(snap, positions))
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	compressed := snappy.Encode(nil, raw)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create layout file: %w", err)
	}
	writer := bufio.NewWriter(file)

	if err := writeLayoutFrame(writer, compressed); err != nil {
		file.Close()
		return fmt.Errorf("write layout file: %w", err)
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("flush layout file: %w", err)
	}
	return file.Close()
}

func writeLayoutFrame(w io.Writer, compressed []byte) error {
	if err := binary.Write(w, binary.BigEndian, layoutMagic); err != nil {
		return err
	}
	if _, err := w.Write([]byte{layoutVersion}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(compressed))); err != nil {
		return err
	}
	if _, err := w.Write(compressed); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, crc32.ChecksumIEEE(compressed)); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, time.Now().Unix())
}

// LoadLayout reads a layout file back into a snapshot and its positions.
func LoadLayout(path string) (*graph.Snapshot, map[string]simulation.Position, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read layout file: %w", err)
	}

	raw, err := decodeLayoutFrame(data)
	if err != nil {
		return nil, nil, fmt.Errorf("layout file %s: %w", path, err)
	}

	var doc VizData
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("layout file %s: %w", path, err)
	}

	nodes := make([]graph.Node, 0, len(doc.Nodes))
	positions := make(map[string]simulation.Position, len(doc.Nodes))
	for _, n := range doc.Nodes {
		nodes = append(nodes, graph.Node{
			ID:         n.ID,
			Label:      n.Label,
			Type:       graph.NodeType(n.Type),
			Properties: n.Properties,
		})
		positions[n.ID] = simulation.Position{X: n.X, Y: n.Y}
	}
	edges := make([]graph.Edge, 0, len(doc.Edges))
	for _, e := range doc.Edges {
		edges = append(edges, graph.Edge{
			Source:     e.Source,
			Target:     e.Target,
			Type:       e.Type,
			Properties: e.Properties,
		})
	}

	snap, err := graph.NewSnapshot(nodes, edges, doc.CenterNodeID)
	if err != nil {
		return nil, nil, fmt.Errorf("layout file %s: %w", path, err)
	}
	return snap, positions, nil
}

func decodeLayoutFrame(data []byte) ([]byte, error) {
	r := bytes.NewReader(data)

	var magic uint32
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return nil, ErrBadMagic
	}
	if magic != layoutMagic {
		return nil, ErrBadMagic
	}

	version, err := r.ReadByte()
	if err != nil {
		return nil, ErrBadVersion
	}
	if version != layoutVersion {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, version)
	}

	var dataLen uint32
	if err := binary.Read(r, binary.BigEndian, &dataLen); err != nil {
		return nil, fmt.Errorf("read data length: %w", err)
	}
	compressed := make([]byte, dataLen)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}

	var checksum uint32
	if err := binary.Read(r, binary.BigEndian, &checksum); err != nil {
		return nil, fmt.Errorf("read checksum: %w", err)
	}
	if crc32.ChecksumIEEE(compressed) != checksum {
		return nil, ErrChecksumMismatch
	}

	raw, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("decompress payload: %w", err)
	}
	return raw, nil
}
