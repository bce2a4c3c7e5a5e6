package types

// ResourceType identifies the kind of cloud resource being monitored.
type ResourceType string

const (
	ResourceTypeComputeInstance   ResourceType = "compute_instance"
	ResourceTypeManagedDatabase   ResourceType = "managed_database"
	ResourceTypeLoadBalancer      ResourceType = "load_balancer"
	ResourceTypeClassicLB         ResourceType = "classic_load_balancer"
	ResourceTypeObjectStore       ResourceType = "object_store"
	ResourceTypeFunction          ResourceType = "serverless_function"
	ResourceTypeContainerService  ResourceType = "container_service"
	ResourceTypeKubernetesCluster ResourceType = "kubernetes_cluster"
	ResourceTypeCDNDistribution   ResourceType = "cdn_distribution"
	ResourceTypeMemoryCache       ResourceType = "memory_cache"
	ResourceTypeKVTable           ResourceType = "kv_table"
)

var resourceTypes = map[ResourceType]bool{
	ResourceTypeComputeInstance:   true,
	ResourceTypeManagedDatabase:   true,
	ResourceTypeLoadBalancer:      true,
	ResourceTypeClassicLB:         true,
	ResourceTypeObjectStore:       true,
	ResourceTypeFunction:          true,
	ResourceTypeContainerService:  true,
	ResourceTypeKubernetesCluster: true,
	ResourceTypeCDNDistribution:   true,
	ResourceTypeMemoryCache:       true,
	ResourceTypeKVTable:           true,
}

func (t ResourceType) IsValid() bool {
	return resourceTypes[t]
}

// ResourceStatus is the derived health of a resource. It is set only by the
// probe pipeline or an explicit operator override.
type ResourceStatus string

const (
	ResourceStatusHealthy    ResourceStatus = "healthy"
	ResourceStatusDegraded   ResourceStatus = "degraded"
	ResourceStatusUnhealthy  ResourceStatus = "unhealthy"
	ResourceStatusUnknown    ResourceStatus = "unknown"
	ResourceStatusTerminated ResourceStatus = "terminated"
)

func (s ResourceStatus) IsValid() bool {
	switch s {
	case ResourceStatusHealthy, ResourceStatusDegraded, ResourceStatusUnhealthy,
		ResourceStatusUnknown, ResourceStatusTerminated:
		return true
	}
	return false
}

// HealthStatus is the raw outcome of a single probe.
type HealthStatus string

const (
	HealthStatusUp          HealthStatus = "up"
	HealthStatusDown        HealthStatus = "down"
	HealthStatusDegraded    HealthStatus = "degraded"
	HealthStatusTimeout     HealthStatus = "timeout"
	HealthStatusUnreachable HealthStatus = "unreachable"
)

func (s HealthStatus) IsValid() bool {
	switch s {
	case HealthStatusUp, HealthStatusDown, HealthStatusDegraded,
		HealthStatusTimeout, HealthStatusUnreachable:
		return true
	}
	return false
}

// Severity orders incidents for triage. Lower rank means more urgent.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

var severityRanks = map[Severity]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
	SeverityInfo:     4,
}

func (s Severity) IsValid() bool {
	_, ok := severityRanks[s]
	return ok
}

// Rank returns the triage order of the severity, critical first.
func (s Severity) Rank() int {
	if rank, ok := severityRanks[s]; ok {
		return rank
	}
	return len(severityRanks)
}

// IncidentStatus is an incident's position in the lifecycle.
type IncidentStatus string

const (
	IncidentStatusOpen          IncidentStatus = "open"
	IncidentStatusAcknowledged  IncidentStatus = "acknowledged"
	IncidentStatusInvestigating IncidentStatus = "investigating"
	IncidentStatusResolved      IncidentStatus = "resolved"
	IncidentStatusClosed        IncidentStatus = "closed"
)

func (s IncidentStatus) IsValid() bool {
	switch s {
	case IncidentStatusOpen, IncidentStatusAcknowledged, IncidentStatusInvestigating,
		IncidentStatusResolved, IncidentStatusClosed:
		return true
	}
	return false
}

// IsActive reports whether the incident still needs attention.
func (s IncidentStatus) IsActive() bool {
	return s != IncidentStatusResolved && s != IncidentStatusClosed
}

// ActiveIncidentStatuses lists every non-terminal lifecycle state.
var ActiveIncidentStatuses = []IncidentStatus{
	IncidentStatusOpen,
	IncidentStatusAcknowledged,
	IncidentStatusInvestigating,
}
