package layout

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/sigreer/partplan/internal/disk"
)

// Result is the outcome of one request. Start and End are the resolved
// sectors of an add request.
type Result struct {
	Request Request
	Start   uint64
	End     uint64
	Err     error
}

// Accepted reports whether the request was applied.
func (r Result) Accepted() bool {
	return r.Err == nil
}

// Apply runs every request of the layout against ds, in order. A rejected
// request does not stop later ones.
func (l *Layout) Apply(ds *disk.Disks) []Result {
	results := make([]Result, 0, len(l.Requests))
	for _, req := range l.Requests {
		res := applyRequest(ds, req)
		if res.Err != nil {
			log.Warn("request rejected", "device", req.Device, "start", req.Start, "end", req.End, "err", res.Err)
		} else {
			log.Info("request accepted", "device", req.Device, "start", res.Start, "end", res.End)
		}
		results = append(results, res)
	}
	return results
}

func applyRequest(ds *disk.Disks, req Request) Result {
	res := Result{Request: req}

	if req.Remove != 0 {
		res.Err = ds.RemovePartition(req.Device, req.Remove)
		return res
	}

	d, ok := ds.Device(req.Device)
	if !ok {
		res.Err = fmt.Errorf("%s: %w", req.Device, disk.ErrDeviceNotFound)
		return res
	}

	builder, err := req.builder(d)
	if err != nil {
		res.Err = err
		return res
	}
	res.Start, res.End = builder.StartSector, builder.EndSector
	res.Err = disk.AddPartition(d, builder)
	return res
}

// builder resolves the request's sector specifications against d.
func (req Request) builder(d disk.Disk) (*disk.PartitionBuilder, error) {
	var start uint64
	switch {
	case req.Start != "":
		s, err := disk.ParseSector(req.Start)
		if err != nil {
			return nil, err
		}
		start = disk.GetSector(d, s)
	case d.IsLogical():
		// Logical volumes are packed one after another in the pool.
		start = disk.Used(d)
	default:
		start = disk.GetSector(d, disk.Start())
	}

	var end uint64
	switch {
	case req.Size != "" && req.End != "":
		return nil, fmt.Errorf("request for %s sets both end and size", req.Device)
	case req.Size != "":
		size, err := humanize.ParseBytes(req.Size)
		if err != nil {
			return nil, fmt.Errorf("invalid size %q: %w", req.Size, err)
		}
		sectors := size / d.SectorSize()
		if sectors == 0 {
			return nil, fmt.Errorf("size %q is smaller than a sector", req.Size)
		}
		end = start + sectors - 1
	case req.End != "":
		s, err := disk.ParseSector(req.End)
		if err != nil {
			return nil, err
		}
		end = disk.GetSector(d, s)
	default:
		end = disk.GetSector(d, disk.End())
	}

	fs, err := disk.ParseFileSystem(req.FileSystem)
	if err != nil {
		return nil, err
	}
	partType, err := disk.ParsePartitionType(req.Type)
	if err != nil {
		return nil, err
	}

	b := disk.NewPartitionBuilder(start, end, fs).
		PartitionType(partType).
		Name(req.Name).
		Mount(req.Target)
	if req.VolumeGroup != "" {
		b.LogicalVolume(req.VolumeGroup, nil)
	}
	return b, nil
}
