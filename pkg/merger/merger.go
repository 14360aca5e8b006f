package merger

import (
	"github.com/kage-cloud/routemap/pkg/util/envoyutil"
)

// Envelope is the single shape every input document is folded into before
// extraction.
type Envelope struct {
	TypedConfigs    []envoyutil.Object `json:"configs"`
	StaticResources StaticResources    `json:"static_resources"`
}

type StaticResources struct {
	Listeners []envoyutil.Object `json:"listeners"`
	Clusters  []envoyutil.Object `json:"clusters"`
}

func NewEnvelope() *Envelope {
	return &Envelope{
		TypedConfigs: []envoyutil.Object{},
		StaticResources: StaticResources{
			Listeners: []envoyutil.Object{},
			Clusters:  []envoyutil.Object{},
		},
	}
}

// Merge folds parsed documents into one Envelope. Documents of unrecognized
// shape are dropped.
func Merge(docs []interface{}) *Envelope {
	env := NewEnvelope()
	for _, d := range docs {
		add(env, d)
	}
	return env
}

// A rule folds a matching document into the envelope and returns any nested
// documents that must be merged as if they were top level.
type rule struct {
	matches func(doc envoyutil.Object) bool
	apply   func(env *Envelope, doc envoyutil.Object) []interface{}
}

// shapeRules are tried in order and only the first match applies.
var shapeRules = []rule{
	// admin config dump
	{
		matches: func(doc envoyutil.Object) bool {
			_, ok := envoyutil.AsList(doc["configs"])
			return ok
		},
		apply: func(env *Envelope, doc envoyutil.Object) []interface{} {
			env.TypedConfigs = append(env.TypedConfigs, envoyutil.GetObjects(doc, "configs")...)
			return nil
		},
	},
	// bootstrap
	{
		matches: func(doc envoyutil.Object) bool {
			return envoyutil.GetObject(doc, "static_resources") != nil
		},
		apply: func(env *Envelope, doc envoyutil.Object) []interface{} {
			sr := envoyutil.GetObject(doc, "static_resources")
			env.StaticResources.Listeners = append(env.StaticResources.Listeners, envoyutil.GetObjects(sr, "listeners")...)
			env.StaticResources.Clusters = append(env.StaticResources.Clusters, envoyutil.GetObjects(sr, "clusters")...)
			return nil
		},
	},
	// xDS discovery response
	{
		matches: func(doc envoyutil.Object) bool {
			_, ok := envoyutil.AsList(doc["resources"])
			return ok
		},
		apply: func(_ *Envelope, doc envoyutil.Object) []interface{} {
			resources, _ := envoyutil.AsList(doc["resources"])
			return resources
		},
	},
	// bare listener
	{
		matches: func(doc envoyutil.Object) bool {
			return envoyutil.Has(doc, "address") && envoyutil.Has(doc, "filter_chains")
		},
		apply: func(env *Envelope, doc envoyutil.Object) []interface{} {
			env.StaticResources.Listeners = append(env.StaticResources.Listeners, doc)
			return nil
		},
	},
	// bare cluster
	{
		matches: func(doc envoyutil.Object) bool {
			return envoyutil.Has(doc, "type") && envoyutil.Has(doc, "connect_timeout")
		},
		apply: func(env *Envelope, doc envoyutil.Object) []interface{} {
			env.StaticResources.Clusters = append(env.StaticResources.Clusters, doc)
			return nil
		},
	},
}

func add(env *Envelope, doc interface{}) {
	if l, ok := envoyutil.AsList(doc); ok {
		for _, v := range l {
			add(env, v)
		}
		return
	}

	obj, ok := envoyutil.AsObject(doc)
	if !ok {
		return
	}

	for _, r := range shapeRules {
		if r.matches(obj) {
			for _, nested := range r.apply(env, obj) {
				add(env, nested)
			}
			break
		}
	}

	// Typed resources also go to the typed bucket, whatever shape matched.
	if envoyutil.HasType(obj) {
		env.TypedConfigs = append(env.TypedConfigs, obj)
	}
}
