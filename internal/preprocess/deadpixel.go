package preprocess

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tacusci/rawforge/internal/camera"
	"github.com/tacusci/rawforge/internal/rawimage"
)

// BadPixel is one (col, row, timestamp) entry from a bad-pixel file.
type BadPixel struct {
	Col, Row int
	When     time.Time
}

// ParseBadPixelFile reads the text format: one "col row timestamp"
// triple per line, blank lines and "#"-prefixed comments ignored.
func ParseBadPixelFile(r io.Reader) ([]BadPixel, error) {
	var out []BadPixel
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("preprocess: malformed bad pixel line %q", line)
		}
		col, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("preprocess: bad pixel column: %w", err)
		}
		row, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("preprocess: bad pixel row: %w", err)
		}
		ts, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("preprocess: bad pixel timestamp: %w", err)
		}
		out = append(out, BadPixel{Col: col, Row: row, When: time.Unix(ts, 0)})
	}
	return out, scanner.Err()
}

// RepairDeadPixels replaces every bad pixel whose timestamp precedes
// shotTime with the average of its nearest same-color neighbors,
// widening the search radius until at least one donor is found.
func RepairDeadPixels(plane *rawimage.Plane, d *camera.Descriptor, bad []BadPixel, shotTime time.Time) {
	for _, bp := range bad {
		if !bp.When.Before(shotTime) {
			continue
		}
		if bp.Col < 0 || bp.Col >= plane.Width || bp.Row < 0 || bp.Row >= plane.Height {
			continue
		}
		repairPixel(plane, d, bp.Col, bp.Row)
	}
}

func repairPixel(plane *rawimage.Plane, d *camera.Descriptor, col, row int) {
	targetChannel := channelAt(d, col, row)
	for radius := 1; radius < plane.Width+plane.Height; radius++ {
		var sum int64
		var count int64
		for dy := -radius; dy <= radius; dy++ {
			y := row + dy
			if y < 0 || y >= plane.Height {
				continue
			}
			for dx := -radius; dx <= radius; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				// only the ring at exactly this radius, same color
				if max(abs(dx), abs(dy)) != radius {
					continue
				}
				x := col + dx
				if x < 0 || x >= plane.Width {
					continue
				}
				if channelAt(d, x, y) != targetChannel {
					continue
				}
				sum += int64(plane.At(x, y, 0))
				count++
			}
		}
		if count > 0 {
			plane.Set(col, row, 0, uint16(sum/count))
			return
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
