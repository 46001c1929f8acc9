package geometry

import "github.com/kfntc/kfntc/core/glyf"

// CurveResolution is R in §4.5's flattening step: each quadratic segment
// is sampled at R+1 points including both endpoints.
const CurveResolution = 16

// Flatten turns a contour of on/off-curve points into a closed polygonal
// ring of plain 2D points, per §4.5's flattening stage.
func Flatten(contour glyf.Contour) []Vec2 {
	n := len(contour)
	if n == 0 {
		return nil
	}

	// Normalize so the sequence starts on an on-curve point and no two
	// consecutive entries are both off-curve (inserting implied midpoints
	// where that would otherwise be the case).
	seq := make([]glyf.Point, 0, n+2)
	if !contour[0].OnCurve {
		last := contour[n-1]
		seq = append(seq, glyf.Point{
			X: (last.X + contour[0].X) / 2,
			Y: (last.Y + contour[0].Y) / 2,
			OnCurve: true,
		})
	}
	for i := 0; i < n; i++ {
		seq = append(seq, contour[i])
		if i+1 < n && !contour[i].OnCurve && !contour[i+1].OnCurve {
			seq = append(seq, glyf.Point{
				X: (contour[i].X + contour[i+1].X) / 2,
				Y: (contour[i].Y + contour[i+1].Y) / 2,
				OnCurve: true,
			})
		}
	}

	m := len(seq)
	if m == 1 {
		return []Vec2{{seq[0].X, seq[0].Y}}
	}

	var result []Vec2
	appendSample := func(v Vec2) {
		if len(result) > 0 && dist(result[len(result)-1], v) <= flattenEpsilon {
			return
		}
		result = append(result, v)
	}

	i := 0
	for {
		cur := seq[i]
		j := (i + 1) % m
		next := seq[j]
		if next.OnCurve {
			appendSample(Vec2{cur.X, cur.Y})
			i = j
		} else {
			k := (j + 1) % m
			onEnd := seq[k]
			samples := evalQuad(
				Vec2{cur.X, cur.Y},
				Vec2{next.X, next.Y},
				Vec2{onEnd.X, onEnd.Y},
				CurveResolution,
			)
			for _, s := range samples[:len(samples)-1] {
				appendSample(s)
			}
			i = k
		}
		if i == 0 {
			break
		}
	}
	return result
}

// evalQuad samples a quadratic Bezier (a, ctrl, b) at R+1 points including
// both endpoints.
func evalQuad(a, ctrl, b Vec2, r int) []Vec2 {
	out := make([]Vec2, r+1)
	for i := 0; i <= r; i++ {
		t := float64(i) / float64(r)
		mt := 1 - t
		out[i] = Vec2{
			X: mt*mt*a.X + 2*mt*t*ctrl.X + t*t*b.X,
			Y: mt*mt*a.Y + 2*mt*t*ctrl.Y + t*t*b.Y,
		}
	}
	return out
}
