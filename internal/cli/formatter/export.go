package formatter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/ost/internal/domain"
	"github.com/alexanderramin/ost/internal/tree"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ExportFormat selects the serialisation used by Export.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportYAML ExportFormat = "yaml"
)

// ErrUnknownFormat is returned for export formats other than json and yaml.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseExportFormat accepts "json", "yaml" or "yml", case-insensitively.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return ExportJSON, nil
	case "yaml", "yml":
		return ExportYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (want json or yaml)", ErrUnknownFormat, s)
	}
}

// ExportNode is the serialised form of one tree node.
type ExportNode struct {
	ID        string        `json:"id" yaml:"id"`
	Kind      string        `json:"kind" yaml:"kind"`
	Content   string        `json:"content" yaml:"content"`
	CreatedAt time.Time     `json:"created_at" yaml:"created_at"`
	Children  []*ExportNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// ExportDoc is the serialised form of a snapshot.
type ExportDoc struct {
	Outcome   *ExportNode `json:"outcome" yaml:"outcome"`
	Target    string      `json:"target,omitempty" yaml:"target,omitempty"`
	Selected  []string    `json:"selected" yaml:"selected"`
	NodeCount int         `json:"node_count" yaml:"node_count"`
}

// NewExportDoc converts a snapshot into its export document.
func NewExportDoc(snap tree.Snapshot) ExportDoc {
	selected := snap.Selected
	if selected == nil {
		selected = []string{}
	}
	return ExportDoc{
		Outcome:   exportNode(snap.Root),
		Target:    snap.Target,
		Selected:  selected,
		NodeCount: snap.NodeCount,
	}
}

func exportNode(n *domain.TreeNode) *ExportNode {
	if n == nil {
		return nil
	}
	out := &ExportNode{
		ID:        n.ID,
		Kind:      string(n.Kind),
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, exportNode(c))
	}
	return out
}

// Export serialises the snapshot in the given format. The output always ends
// with a newline.
func Export(snap tree.Snapshot, format ExportFormat) ([]byte, error) {
	doc := NewExportDoc(snap)
	switch format {
	case ExportJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("json marshal: %w", err)
		}
		return append(data, '\n'), nil
	case ExportYAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("yaml marshal: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
