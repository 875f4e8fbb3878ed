package device

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kegliz/zxsyn/qcir"
)

// ParseError reports a device-file failure with its line number.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("device: line %d: %s", e.Line, e.Msg)
}

// block is one "Key: value" section; multi-line values are joined.
type block struct {
	key   string
	value string
	line  int
}

// Read parses the device text format:
//
//	Name: <string>
//	Qubits: <int>
//	Gate Set: {gate, gate, ...}
//	Coupling: [[n00, n01, ...], ...]
//	SGERROR: [...]
//	SGTIME: [...]
//	CNOTERROR: [[...]]
//	CNOTTIME: [[...]]
func Read(r io.Reader) (*Device, error) {
	blocks, err := scanBlocks(r)
	if err != nil {
		return nil, err
	}
	get := func(key string) *block {
		for i := range blocks {
			if strings.EqualFold(blocks[i].key, key) {
				return &blocks[i]
			}
		}
		return nil
	}

	nameBlk := get("Name")
	if nameBlk == nil {
		return nil, &ParseError{Line: 1, Msg: "missing Name"}
	}
	qubitsBlk := get("Qubits")
	if qubitsBlk == nil {
		return nil, &ParseError{Line: 1, Msg: "missing Qubits"}
	}
	n, err := strconv.Atoi(strings.TrimSpace(qubitsBlk.value))
	if err != nil || n <= 0 {
		return nil, &ParseError{Line: qubitsBlk.line, Msg: "Qubits is not a positive integer"}
	}

	d := New(strings.TrimSpace(nameBlk.value), n)

	if gs := get("Gate Set"); gs != nil {
		inner := strings.Trim(strings.TrimSpace(gs.value), "{}")
		for _, tok := range strings.Split(inner, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			gt, err := qcir.Factory(tok)
			if err != nil {
				return nil, &ParseError{Line: gs.line, Msg: fmt.Sprintf("unsupported gate type %q", tok)}
			}
			d.AddGateType(gt)
		}
	}

	coupling := get("Coupling")
	if coupling == nil {
		return nil, &ParseError{Line: 1, Msg: "missing Coupling"}
	}
	adjLists, err := parseIntLists(coupling)
	if err != nil {
		return nil, err
	}
	if len(adjLists) != n {
		return nil, &ParseError{Line: coupling.line,
			Msg: fmt.Sprintf("coupling lists %d != qubit count %d", len(adjLists), n)}
	}
	for i, adj := range adjLists {
		for _, j := range adj {
			if j < 0 || j >= n {
				return nil, &ParseError{Line: coupling.line,
					Msg: fmt.Sprintf("qubit %d out of range", j)}
			}
			if j > i {
				d.AddAdjacency(i, j)
			}
		}
	}

	var cxErr, cxTime [][]float64
	if blk := get("CNOTERROR"); blk != nil {
		if cxErr, err = parseFloatLists(blk); err != nil {
			return nil, err
		}
	}
	if blk := get("CNOTTIME"); blk != nil {
		if cxTime, err = parseFloatLists(blk); err != nil {
			return nil, err
		}
	}
	for i, adj := range adjLists {
		for k, j := range adj {
			if j <= i {
				continue
			}
			info := d.AdjacencyInfo(i, j)
			if i < len(cxErr) && k < len(cxErr[i]) {
				info.Error = cxErr[i][k]
			}
			if i < len(cxTime) && k < len(cxTime[i]) {
				info.Time = cxTime[i][k]
			}
			d.SetAdjacencyInfo(i, j, info)
		}
	}

	var sgErr, sgTime []float64
	if blk := get("SGERROR"); blk != nil {
		if sgErr, err = parseFloats(blk); err != nil {
			return nil, err
		}
	}
	if blk := get("SGTIME"); blk != nil {
		if sgTime, err = parseFloats(blk); err != nil {
			return nil, err
		}
	}
	for i := 0; i < n; i++ {
		info := Info{}
		if i < len(sgErr) {
			info.Error = sgErr[i]
		}
		if i < len(sgTime) {
			info.Time = sgTime[i]
		}
		d.SetQubitInfo(i, info)
	}

	d.CalculatePath()
	return d, nil
}

// ReadString parses a device description held in a string.
func ReadString(s string) (*Device, error) { return Read(strings.NewReader(s)) }

func scanBlocks(r io.Reader) ([]block, error) {
	var blocks []block
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, isHeader := splitHeader(line)
		if isHeader {
			blocks = append(blocks, block{key: key, value: value, line: lineNo})
			continue
		}
		if len(blocks) == 0 {
			return nil, &ParseError{Line: lineNo, Msg: "data before any key"}
		}
		blocks[len(blocks)-1].value += " " + strings.TrimSpace(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Line: lineNo, Msg: err.Error()}
	}
	return blocks, nil
}

// splitHeader detects a "Key: value" line; continuation lines (raw
// bracket data) are not headers.
func splitHeader(line string) (key, value string, ok bool) {
	trimmed := strings.TrimSpace(line)
	colon := strings.Index(trimmed, ":")
	if colon <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(trimmed[:colon])
	for _, r := range key {
		if !(r == ' ' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')) {
			return "", "", false
		}
	}
	return key, strings.TrimSpace(trimmed[colon+1:]), true
}

// parseIntLists parses "[[a, b], [c], ...]" into slices.
func parseIntLists(blk *block) ([][]int, error) {
	groups, err := bracketGroups(blk)
	if err != nil {
		return nil, err
	}
	out := make([][]int, len(groups))
	for i, grp := range groups {
		for _, tok := range splitCSV(grp) {
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, &ParseError{Line: blk.line, Msg: fmt.Sprintf("%q is not an integer", tok)}
			}
			out[i] = append(out[i], v)
		}
	}
	return out, nil
}

func parseFloatLists(blk *block) ([][]float64, error) {
	groups, err := bracketGroups(blk)
	if err != nil {
		return nil, err
	}
	out := make([][]float64, len(groups))
	for i, grp := range groups {
		for _, tok := range splitCSV(grp) {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, &ParseError{Line: blk.line, Msg: fmt.Sprintf("%q is not a float", tok)}
			}
			out[i] = append(out[i], v)
		}
	}
	return out, nil
}

func parseFloats(blk *block) ([]float64, error) {
	inner := strings.Trim(strings.TrimSpace(blk.value), "[]")
	var out []float64
	for _, tok := range splitCSV(inner) {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, &ParseError{Line: blk.line, Msg: fmt.Sprintf("%q is not a float", tok)}
		}
		out = append(out, v)
	}
	return out, nil
}

// bracketGroups returns the contents of each inner [...] group.
func bracketGroups(blk *block) ([]string, error) {
	s := strings.TrimSpace(blk.value)
	if !strings.HasPrefix(s, "[") {
		return nil, &ParseError{Line: blk.line, Msg: "expected bracketed list"}
	}
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(strings.TrimSpace(s), "]")
	var groups []string
	for {
		open := strings.Index(s, "[")
		if open < 0 {
			break
		}
		closing := strings.Index(s[open:], "]")
		if closing < 0 {
			return nil, &ParseError{Line: blk.line, Msg: "unbalanced brackets"}
		}
		groups = append(groups, s[open+1:open+closing])
		s = s[open+closing+1:]
	}
	return groups, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
