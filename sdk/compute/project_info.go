package compute

import (
	"time"

	"github.com/krancour/compute/sdk/meta"
	"github.com/pkg/errors"
)

// ProjectInfo is a typed view of the metadata of a Compute Engine project.
// Fields the API returns that aren't represented here remain available in
// the meta.Metadata the view was derived from.
type ProjectInfo struct {
	Kind                   string               `json:"kind,omitempty"`
	ID                     string               `json:"id,omitempty"`
	Name                   string               `json:"name,omitempty"`
	Description            string               `json:"description,omitempty"`
	CreationTimestamp      string               `json:"creationTimestamp,omitempty"`
	SelfLink               string               `json:"selfLink,omitempty"`
	DefaultServiceAccount  string               `json:"defaultServiceAccount,omitempty"`
	DefaultNetworkTier     string               `json:"defaultNetworkTier,omitempty"`
	XpnProjectStatus       string               `json:"xpnProjectStatus,omitempty"`
	CommonInstanceMetadata *InstanceMetadata    `json:"commonInstanceMetadata,omitempty"`
	Quotas                 []Quota              `json:"quotas,omitempty"`
	UsageExportLocation    *UsageExportLocation `json:"usageExportLocation,omitempty"`
}

// InstanceMetadata is the key/value metadata shared by all instances in a
// project.
type InstanceMetadata struct {
	Fingerprint string                 `json:"fingerprint,omitempty"`
	Items       []InstanceMetadataItem `json:"items,omitempty"`
}

// InstanceMetadataItem is a single key/value pair of InstanceMetadata.
type InstanceMetadataItem struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Quota is a single resource quota of a project.
type Quota struct {
	Metric string  `json:"metric"`
	Limit  float64 `json:"limit"`
	Usage  float64 `json:"usage"`
}

// UsageExportLocation describes where usage reports are exported.
type UsageExportLocation struct {
	BucketName       string `json:"bucketName,omitempty"`
	ReportNamePrefix string `json:"reportNamePrefix,omitempty"`
}

// ProjectInfoFromMetadata derives a ProjectInfo from raw project metadata.
func ProjectInfoFromMetadata(metadata meta.Metadata) (ProjectInfo, error) {
	info := ProjectInfo{}
	if err := metadata.Into(&info); err != nil {
		return info, errors.Wrap(err, "error decoding project metadata")
	}
	return info, nil
}

// Created returns the time the project was created, or nil if the metadata
// didn't include a parseable creation timestamp.
func (p ProjectInfo) Created() *time.Time {
	if p.CreationTimestamp == "" {
		return nil
	}
	created, err := time.Parse(time.RFC3339, p.CreationTimestamp)
	if err != nil {
		return nil
	}
	return &created
}

// Quota returns the quota for the named metric, if present.
func (p ProjectInfo) Quota(metric string) (Quota, bool) {
	for _, quota := range p.Quotas {
		if quota.Metric == metric {
			return quota, true
		}
	}
	return Quota{}, false
}

// InstanceMetadataValue returns the value of the common instance metadata
// item with the given key, if present.
func (p ProjectInfo) InstanceMetadataValue(key string) (string, bool) {
	if p.CommonInstanceMetadata == nil {
		return "", false
	}
	for _, item := range p.CommonInstanceMetadata.Items {
		if item.Key == key {
			return item.Value, true
		}
	}
	return "", false
}
