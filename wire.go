package quadruped

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The wire protocol is one line per pose: a JSON array of up to NumChannels
// numbers terminated by CRLF. There is no message id, checksum, or length
// prefix; framing is purely "one line = one pose".

// LineTerminator ends every wire message.
const LineTerminator = "\r\n"

// EncodePose serializes a pose as a single wire message, including the
// terminator.
func EncodePose(pose Pose) ([]byte, error) {
	if pose == nil {
		pose = Pose{}
	}
	b, err := json.Marshal([]float64(pose))
	if err != nil {
		return nil, fmt.Errorf("encode pose: %w", err)
	}
	return append(b, LineTerminator...), nil
}

// DecodePose parses one received line into a pose. Surrounding whitespace and
// line terminators are ignored. Arrays shorter than NumChannels are valid;
// the caller decides what the missing trailing channels mean.
func DecodePose(line string) (Pose, error) {
	line = strings.TrimSpace(line)
	var angles []float64
	if err := json.Unmarshal([]byte(line), &angles); err != nil {
		return nil, fmt.Errorf("decode pose: %w", err)
	}
	return Pose(angles), nil
}
