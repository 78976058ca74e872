package basegov

import (
	"basegov/lib/restyutil"
	"basegov/lib/telemetry"
)

var tracer = telemetry.Tracer("basegov.lib.scrapers.basegov")

func (c *Client) SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyutil.AttachOutput(c.Http, out)
}
