package domain

// eventMask keeps the six defined event bits.
const eventMask = 1<<6 - 1

// MaxEventCode is the largest valid event code: all six flags set.
const MaxEventCode = eventMask

// Events holds the six daily weather-event flags packed in an FRSHTT code.
type Events struct {
	Freeze  bool
	Rain    bool
	Snow    bool
	Hail    bool
	Storm   bool
	Tornado bool
}

// DecodeEvents unpacks an event code. Bit 0 is Freeze, bit 5 is Tornado.
// Bits above 5 are ignored.
func DecodeEvents(code int) Events {
	code &= eventMask
	return Events{
		Freeze:  code&(1<<0) != 0,
		Rain:    code&(1<<1) != 0,
		Snow:    code&(1<<2) != 0,
		Hail:    code&(1<<3) != 0,
		Storm:   code&(1<<4) != 0,
		Tornado: code&(1<<5) != 0,
	}
}

// Encode packs the flags back into an event code in [0, MaxEventCode].
func (e Events) Encode() int {
	var code int
	for i, set := range e.flags() {
		if set {
			code |= 1 << i
		}
	}
	return code
}

// flags lists the flags in bit order.
func (e Events) flags() [6]bool {
	return [6]bool{e.Freeze, e.Rain, e.Snow, e.Hail, e.Storm, e.Tornado}
}
