// Package quadruped holds the domain types shared by the host tools and the
// device firmware: the pose vector, channel identities, and the line-oriented
// wire format exchanged over the serial link.
package quadruped

// NumChannels is the number of servo channels on the robot: four legs with a
// hip and a knee joint each.
const NumChannels = 8

// Pose is an ordered vector of one angle (degrees) per servo channel.
// Position is the only key; index i drives channel i.
type Pose []float64

// ChannelName labels a servo channel for humans and for the pose store.
type ChannelName string

// Channel names in wire order. The ordering matches the physical channel
// indexes 0-7 and must never be reordered.
const (
	TopLeftHip     ChannelName = "top_left_hip"
	BottomLeftHip  ChannelName = "bottom_left_hip"
	TopRightHip    ChannelName = "top_right_hip"
	BottomRightHip ChannelName = "bottom_right_hip"
	TopLeftLeg     ChannelName = "top_left_leg"
	BottomLeftLeg  ChannelName = "bottom_left_leg"
	TopRightLeg    ChannelName = "top_right_leg"
	BottomRightLeg ChannelName = "bottom_right_leg"
)

// AllChannels returns the channel names in channel-index order.
func AllChannels() []ChannelName {
	return []ChannelName{
		TopLeftHip,
		BottomLeftHip,
		TopRightHip,
		BottomRightHip,
		TopLeftLeg,
		BottomLeftLeg,
		TopRightLeg,
		BottomRightLeg,
	}
}

// Named converts a pose to the label->angle mapping used by the pose store.
// Channels beyond the pose's length are omitted.
func (p Pose) Named() map[ChannelName]float64 {
	named := make(map[ChannelName]float64, len(p))
	for i, name := range AllChannels() {
		if i >= len(p) {
			break
		}
		named[name] = p[i]
	}
	return named
}

// FromNamed builds a pose from a label->angle mapping. Labels that are not
// channel names are ignored; missing labels default to angle 0.
func FromNamed(named map[ChannelName]float64) Pose {
	pose := make(Pose, NumChannels)
	for i, name := range AllChannels() {
		pose[i] = named[name]
	}
	return pose
}
