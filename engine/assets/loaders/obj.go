package loaders

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spaghettifunk/objscene/engine/core"
	"github.com/spaghettifunk/objscene/engine/math"
	"github.com/spaghettifunk/objscene/engine/renderer/metadata"
)

const (
	// Lines longer than this abort the parse.
	maxObjLineSize = 1024 * 1024

	// Marks a sub-index that could not be parsed in lenient mode. It never resolves.
	invalidObjIndex = ^uint32(0)
)

type objOptions struct {
	lenient         bool
	normalize       bool
	referenceSize   float32
	generateNormals bool
}

type ObjOption func(*objOptions)

// WithLenientParsing keeps going on malformed numbers and unresolvable
// references, storing NaN in the affected attributes instead of failing.
func WithLenientParsing() ObjOption {
	return func(o *objOptions) {
		o.lenient = true
	}
}

// WithReferenceSize sets the size the largest bounding box dimension is scaled to.
func WithReferenceSize(size float32) ObjOption {
	return func(o *objOptions) {
		o.referenceSize = size
	}
}

// WithoutNormalization leaves positions in file coordinates.
func WithoutNormalization() ObjOption {
	return func(o *objOptions) {
		o.normalize = false
	}
}

// WithoutNormalGeneration leaves Normals empty for files without vn records.
func WithoutNormalGeneration() ObjOption {
	return func(o *objOptions) {
		o.generateNormals = false
	}
}

// ObjStats summarizes a single parse.
type ObjStats struct {
	Lines          int
	Positions      int
	Normals        int
	TexCoords      int
	Faces          int
	SkippedFaces   int
	TruncatedFaces int
	Triangles      int
	Vertices       int
	WeldedCorners  int
}

// faceCorner is the parsed form of a face corner token such as "12/5/7".
// Zero means the field was absent or zero.
type faceCorner struct {
	v, vt, vn uint32
}

type objParser struct {
	opts objOptions

	// Raw attribute pools in file order.
	positions []math.Vec3
	normals   []math.Vec3
	texcoords []math.Vec2

	// Maps each unique face corner to its output vertex index.
	cache map[faceCorner]uint32

	out     *metadata.MeshData
	stats   ObjStats
	lineNum int
}

func newObjParser(opts ...ObjOption) *objParser {
	o := objOptions{
		normalize:       true,
		referenceSize:   math.DefaultReferenceSize,
		generateNormals: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &objParser{
		opts:  o,
		cache: make(map[faceCorner]uint32),
		out:   metadata.NewEmptyMeshData(),
	}
}

// ParseObj parses Wavefront OBJ text into an indexed triangle mesh. Any
// malformed record fails the whole parse with an *ObjParseError.
func ParseObj(text string, opts ...ObjOption) (*metadata.MeshData, error) {
	md, _, err := ParseObjWithStats(text, opts...)
	return md, err
}

// ParseObjWithStats is ParseObj that also reports parse statistics.
func ParseObjWithStats(text string, opts ...ObjOption) (*metadata.MeshData, ObjStats, error) {
	p := newObjParser(opts...)
	if err := p.parse(text); err != nil {
		return nil, p.stats, err
	}
	return p.finish(), p.stats, nil
}

// LoadObj never fails: a parse error degrades to an empty mesh.
func LoadObj(text string, opts ...ObjOption) *metadata.MeshData {
	md, stats, err := ParseObjWithStats(text, opts...)
	if err != nil {
		core.LogError("failed to parse obj, using empty mesh: %s", err.Error())
		return metadata.NewEmptyMeshData()
	}
	core.LogDebug("parsed obj: %d lines, %d faces (%d skipped), %d triangles, %d vertices, %d welded corners",
		stats.Lines, stats.Faces, stats.SkippedFaces, stats.Triangles, stats.Vertices, stats.WeldedCorners)
	return md
}

func (p *objParser) parse(text string) error {
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), maxObjLineSize)

	for scanner.Scan() {
		p.lineNum++
		// A tag must be followed by whitespace, so a bare "v" is not a record.
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) < 2 {
			continue
		}

		var err error
		switch lineTokens[0] {
		case "v":
			var v math.Vec3
			v, err = p.parseVec3(lineTokens[1:])
			p.positions = append(p.positions, v)
		case "vn":
			var v math.Vec3
			v, err = p.parseVec3(lineTokens[1:])
			p.normals = append(p.normals, v)
		case "vt":
			var v math.Vec2
			v, err = p.parseVec2(lineTokens[1:])
			p.texcoords = append(p.texcoords, v)
		case "f":
			err = p.parseFace(lineTokens[1:])
		}
		if err != nil {
			return err
		}
	}
	p.stats.Lines = p.lineNum

	if err := scanner.Err(); err != nil {
		return &ObjParseError{Line: p.lineNum + 1, Err: fmt.Errorf("%w: %s", ErrMalformedRecord, err.Error())}
	}
	return nil
}

func (p *objParser) parseFloats(args []string, out []float32) error {
	for i := range out {
		if i >= len(args) {
			if !p.opts.lenient {
				return &ObjParseError{
					Line: p.lineNum,
					Err:  fmt.Errorf("%w: expected %d components; got %d", ErrMalformedRecord, len(out), len(args)),
				}
			}
			out[i] = math.NaN()
			continue
		}

		v, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			if !p.opts.lenient {
				return &ObjParseError{Line: p.lineNum, Token: args[i], Err: fmt.Errorf("%w: not a number", ErrMalformedRecord)}
			}
			out[i] = math.NaN()
			continue
		}
		out[i] = float32(v)
	}
	return nil
}

func (p *objParser) parseVec3(args []string) (math.Vec3, error) {
	var c [3]float32
	err := p.parseFloats(args, c[:])
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}, err
}

func (p *objParser) parseVec2(args []string) (math.Vec2, error) {
	var c [2]float32
	err := p.parseFloats(args, c[:])
	return math.Vec2{X: c[0], Y: c[1]}, err
}

// Parse a face record. Each corner token has one of the forms
// - v
// - v/vt
// - v//vn
// - v/vt/vn
//
// with 1-based indices into the pools populated so far. A triangle emits one
// triangle; a quad emits (0,1,2) followed by (2,3,0). Corners past the fourth
// are ignored and faces with fewer than three corners are skipped.
func (p *objParser) parseFace(corners []string) error {
	if len(corners) < 3 {
		p.stats.SkippedFaces++
		core.LogWarn("[line %d] skipping face: %s", p.lineNum, ErrShortFace.Error())
		return nil
	}
	if len(corners) > 4 {
		p.stats.TruncatedFaces++
		core.LogDebug("[line %d] face has %d corners; only the first 4 are used", p.lineNum, len(corners))
		corners = corners[:4]
	}

	order := []int{0, 1, 2}
	if len(corners) == 4 {
		order = append(order, 2, 3, 0)
	}

	var tri [6]uint32
	for i, c := range order {
		idx, err := p.resolveCorner(corners[c])
		if err != nil {
			return err
		}
		tri[i] = idx
	}

	p.out.Indices = append(p.out.Indices, tri[:len(order)]...)
	p.stats.Faces++
	p.stats.Triangles += len(order) / 3
	return nil
}

func (p *objParser) parseCornerIndex(field string, required bool, token string) (uint32, error) {
	if field == "" {
		if required {
			if p.opts.lenient {
				return invalidObjIndex, nil
			}
			return 0, &ObjParseError{Line: p.lineNum, Token: token, Err: fmt.Errorf("%w: missing vertex index", ErrMalformedRecord)}
		}
		return 0, nil
	}

	v, err := strconv.ParseUint(field, 10, 32)
	if err != nil {
		if p.opts.lenient {
			return invalidObjIndex, nil
		}
		return 0, &ObjParseError{Line: p.lineNum, Token: token, Err: fmt.Errorf("%w: invalid index %q", ErrMalformedRecord, field)}
	}
	return uint32(v), nil
}

func (p *objParser) parseCorner(token string) (faceCorner, error) {
	fields := strings.Split(token, "/")
	if len(fields) > 3 {
		if !p.opts.lenient {
			return faceCorner{}, &ObjParseError{Line: p.lineNum, Token: token, Err: fmt.Errorf("%w: too many index fields", ErrMalformedRecord)}
		}
		fields = fields[:3]
	}

	var (
		key faceCorner
		err error
	)
	if key.v, err = p.parseCornerIndex(fields[0], true, token); err != nil {
		return key, err
	}
	if len(fields) > 1 {
		if key.vt, err = p.parseCornerIndex(fields[1], false, token); err != nil {
			return key, err
		}
	}
	if len(fields) > 2 {
		if key.vn, err = p.parseCornerIndex(fields[2], false, token); err != nil {
			return key, err
		}
	}
	return key, nil
}

// Returns the output index for a face corner token, emitting a new vertex
// the first time the corner is seen.
func (p *objParser) resolveCorner(token string) (uint32, error) {
	key, err := p.parseCorner(token)
	if err != nil {
		return 0, err
	}

	if idx, exists := p.cache[key]; exists {
		p.stats.WeldedCorners++
		return idx, nil
	}

	pos, err := p.selectVec3(p.positions, key.v, "position", token)
	if err != nil {
		return 0, err
	}

	// Empty or zero texture and normal indices fall back to the vertex index.
	var (
		uv     math.Vec2
		normal math.Vec3
	)
	if len(p.texcoords) > 0 {
		ti := key.vt
		if ti == 0 {
			ti = key.v
		}
		if uv, err = p.selectVec2(p.texcoords, ti, token); err != nil {
			return 0, err
		}
	}
	if len(p.normals) > 0 {
		ni := key.vn
		if ni == 0 {
			ni = key.v
		}
		if normal, err = p.selectVec3(p.normals, ni, "normal", token); err != nil {
			return 0, err
		}
	}

	idx := uint32(len(p.out.Positions))
	p.out.Positions = append(p.out.Positions, pos)
	if len(p.texcoords) > 0 {
		p.out.TextureCoords = append(p.out.TextureCoords, uv)
	}
	if len(p.normals) > 0 {
		p.out.Normals = append(p.out.Normals, normal)
	}
	p.cache[key] = idx
	p.stats.Vertices++
	return idx, nil
}

func (p *objParser) outOfRange(kind string, index uint32, poolLen int, token string) error {
	return &ObjParseError{
		Line:  p.lineNum,
		Token: token,
		Err:   fmt.Errorf("%w: %s %d (have %d)", ErrIndexOutOfRange, kind, index, poolLen),
	}
}

func (p *objParser) selectVec3(pool []math.Vec3, index uint32, kind, token string) (math.Vec3, error) {
	if index == 0 || int64(index) > int64(len(pool)) {
		if p.opts.lenient {
			return math.Vec3{X: math.NaN(), Y: math.NaN(), Z: math.NaN()}, nil
		}
		return math.Vec3{}, p.outOfRange(kind, index, len(pool), token)
	}
	return pool[index-1], nil
}

func (p *objParser) selectVec2(pool []math.Vec2, index uint32, token string) (math.Vec2, error) {
	if index == 0 || int64(index) > int64(len(pool)) {
		if p.opts.lenient {
			return math.Vec2{X: math.NaN(), Y: math.NaN()}, nil
		}
		return math.Vec2{}, p.outOfRange("texture coordinate", index, len(pool), token)
	}
	return pool[index-1], nil
}

func (p *objParser) finish() *metadata.MeshData {
	p.stats.Positions = len(p.positions)
	p.stats.Normals = len(p.normals)
	p.stats.TexCoords = len(p.texcoords)

	md := p.out
	if len(md.Indices) == 0 {
		return metadata.NewEmptyMeshData()
	}

	if p.opts.normalize {
		md.Extents = math.NormalizePositions(md.Positions, p.opts.referenceSize)
	} else {
		md.Extents, _ = math.ExtentsOf(md.Positions)
	}

	if len(p.normals) == 0 && p.opts.generateNormals {
		md.Normals = math.GenerateNormals(md.Positions, md.Indices)
	}
	return md
}
