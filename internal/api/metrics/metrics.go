// Package metrics defines the custom Prometheus metrics of the blog platform.
// It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at import
// time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blogplatform"

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of successfully registered users.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// BlogsCreatedTotal counts newly published blogs.
var BlogsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blogs_created_total",
		Help:      "Total number of blogs published.",
	},
)

// CommentsCreatedTotal counts newly posted comments.
var CommentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_created_total",
		Help:      "Total number of comments posted.",
	},
)

// CascadeDeletedTotal counts documents removed by admin cascade deletions.
// Label:
//   - entity: "user", "blog", or "comment"
var CascadeDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cascade_deleted_total",
		Help:      "Total number of documents removed by cascading deletions.",
	},
	[]string{"entity"},
)
