// Package objmodel loads Wavefront OBJ meshes into xform-ready
// triangle data, adapted from the teacher's model.go LoadModel. Unlike
// the teacher, which panics on any malformed line, every failure here
// is returned as an error: a model load is a runtime event (a missing
// asset on disk, a truncated export), not a programmer error.
package objmodel

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Vec3 is a position or normal.
type Vec3 struct {
	X, Y, Z float32
}

// Vec2 is a texture coordinate.
type Vec2 struct {
	X, Y float32
}

// Triangle is one face: per-corner position/uv/normal, matching the
// teacher's Triangle{Vertices, UV, Normals} grouping.
type Triangle struct {
	Position [3]Vec3
	UV       [3]Vec2
	Normal   [3]Vec3
}

// Model is the flattened triangle list Load produces, mirroring
// the teacher's `type Model []Triangle`.
type Model []Triangle

// Load parses the OBJ file at path. It supports the same subset the
// teacher's loader does: v/vn/vt/f lines, triangulated faces only,
// 1-based v/vt/vn indices.
func Load(path string) (Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("objmodel: open %q: %w", path, err)
	}
	defer f.Close()

	var positions, normals []Vec3
	var uvs []Vec2
	var posIdx, uvIdx, normIdx []int

	scanner := bufio.NewScanner(f)
	line := 0

	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("objmodel: %q line %d: %w", path, line, err)
			}
			positions = append(positions, v)
		case "vn":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("objmodel: %q line %d: %w", path, line, err)
			}
			normals = append(normals, v)
		case "vt":
			v, err := parseVec2(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("objmodel: %q line %d: %w", path, line, err)
			}
			uvs = append(uvs, v)
		case "f":
			pi, ui, ni, err := parseFace(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("objmodel: %q line %d: %w", path, line, err)
			}
			posIdx = append(posIdx, pi[:]...)
			uvIdx = append(uvIdx, ui[:]...)
			normIdx = append(normIdx, ni[:]...)
		}
	}

	if err := scanner.Err(); err != nil && err != io.EOF {
		return nil, fmt.Errorf("objmodel: %q: %w", path, err)
	}

	model := make(Model, 0, len(posIdx)/3)

	for i := 0; i < len(posIdx)/3; i++ {
		var tri Triangle
		for c := 0; c < 3; c++ {
			pv, err := resolve(positions, posIdx[i*3+c], path, line)
			if err != nil {
				return nil, err
			}
			tri.Position[c] = pv

			if len(uvs) > 0 {
				uv, err := resolveUV(uvs, uvIdx[i*3+c], path, line)
				if err != nil {
					return nil, err
				}
				tri.UV[c] = uv
			}

			if len(normals) > 0 {
				nv, err := resolve(normals, normIdx[i*3+c], path, line)
				if err != nil {
					return nil, err
				}
				tri.Normal[c] = nv
			}
		}
		model = append(model, tri)
	}

	return model, nil
}

func parseVec3(f []string) (Vec3, error) {
	if len(f) < 3 {
		return Vec3{}, fmt.Errorf("expected 3 components, got %d", len(f))
	}
	x, err := strconv.ParseFloat(f[0], 32)
	if err != nil {
		return Vec3{}, err
	}
	y, err := strconv.ParseFloat(f[1], 32)
	if err != nil {
		return Vec3{}, err
	}
	z, err := strconv.ParseFloat(f[2], 32)
	if err != nil {
		return Vec3{}, err
	}
	return Vec3{float32(x), float32(y), float32(z)}, nil
}

func parseVec2(f []string) (Vec2, error) {
	if len(f) < 2 {
		return Vec2{}, fmt.Errorf("expected 2 components, got %d", len(f))
	}
	x, err := strconv.ParseFloat(f[0], 32)
	if err != nil {
		return Vec2{}, err
	}
	y, err := strconv.ParseFloat(f[1], 32)
	if err != nil {
		return Vec2{}, err
	}
	return Vec2{float32(x), float32(y)}, nil
}

func parseFace(f []string) (pos, uv, norm [3]int, err error) {
	if len(f) != 3 {
		return pos, uv, norm, fmt.Errorf("only triangulated faces are supported, got %d corners", len(f))
	}
	for c := 0; c < 3; c++ {
		parts := strings.Split(f[c], "/")
		if len(parts) != 3 {
			return pos, uv, norm, fmt.Errorf("expected v/vt/vn face corner, got %q", f[c])
		}
		p, err := strconv.Atoi(parts[0])
		if err != nil {
			return pos, uv, norm, err
		}
		var u int
		if parts[1] != "" {
			u, err = strconv.Atoi(parts[1])
			if err != nil {
				return pos, uv, norm, err
			}
		}
		n, err := strconv.Atoi(parts[2])
		if err != nil {
			return pos, uv, norm, err
		}
		pos[c], uv[c], norm[c] = p, u, n
	}
	return pos, uv, norm, nil
}

func resolve(data []Vec3, idx int, path string, line int) (Vec3, error) {
	if idx < 1 || idx > len(data) {
		return Vec3{}, fmt.Errorf("objmodel: %q line %d: vertex index %d out of range", path, line, idx)
	}
	return data[idx-1], nil
}

func resolveUV(data []Vec2, idx int, path string, line int) (Vec2, error) {
	if idx < 1 || idx > len(data) {
		return Vec2{}, fmt.Errorf("objmodel: %q line %d: uv index %d out of range", path, line, idx)
	}
	return data[idx-1], nil
}
