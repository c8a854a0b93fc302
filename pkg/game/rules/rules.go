package rules

import (
	"regexp"
	"strings"
	"sync"

	"limeal.fr/launchygo-resolver/pkg/game/manifests"
	"limeal.fr/launchygo-resolver/pkg/game/settings"
)

type FeatureSet interface {
	HasFeature(f settings.Feature) bool
}

var (
	patternsMu sync.Mutex
	patterns   = map[string]*regexp.Regexp{}
)

// find reports whether pattern occurs in s. A pattern Go cannot compile never matches.
func find(pattern string, s string) bool {
	patternsMu.Lock()
	re, ok := patterns[pattern]
	if !ok {
		re, _ = regexp.Compile(pattern)
		patterns[pattern] = re
	}
	patternsMu.Unlock()

	if re == nil {
		return false
	}
	return re.MatchString(s)
}

func decide(holds bool, allow bool) bool {
	if holds {
		return allow
	}
	return !allow
}

// JvmRuleAllows folds the os predicates of a JVM argument rule. The decision
// starts at the opposite of the rule's action and every present predicate
// overwrites it, so only the last present predicate counts.
func JvmRuleAllows(rule manifests.Rule, env Env) bool {
	allow := rule.Allow()
	decision := !allow
	if rule.OS == nil {
		return decision
	}

	if rule.OS.Name != "" {
		decision = decide(rule.OS.Name == env.Name, allow)
	}
	if rule.OS.Version != "" {
		decision = decide(find(rule.OS.Version, env.Version), allow)
	}
	if rule.OS.Arch != "" {
		decision = decide(find(rule.OS.Arch, env.Arch), allow)
	}
	return decision
}

// GameRuleAllows yields the rule's action as soon as one enabled feature
// predicate is also enabled on the launch, and its opposite otherwise.
// Unknown features never match.
func GameRuleAllows(rule manifests.Rule, features FeatureSet) bool {
	allow := rule.Allow()
	for _, f := range settings.RuleFeatures {
		if rule.Features[string(f)] && features.HasFeature(f) {
			return allow
		}
	}
	return !allow
}

func IncludeJvmArgument(arg manifests.Argument, env Env) bool {
	for _, rule := range arg.Rules {
		if !JvmRuleAllows(rule, env) {
			return false
		}
	}
	return true
}

func IncludeGameArgument(arg manifests.Argument, features FeatureSet) bool {
	for _, rule := range arg.Rules {
		if !GameRuleAllows(rule, features) {
			return false
		}
	}
	return true
}

// ShouldInclude evaluates library rules: the last rule whose os matches the
// host decides. Libraries without rules are always included and rules
// carrying features never apply to libraries.
func ShouldInclude(rulesList []manifests.Rule, env Env) bool {
	if len(rulesList) == 0 {
		return true
	}
	allowed := false
	for _, r := range rulesList {
		if r.Features != nil {
			return false
		}

		applies := true
		if r.OS != nil {
			if r.OS.Name != "" {
				name := strings.ToLower(r.OS.Name)
				// Newer descriptors sometimes say "macos".
				if name == "macos" {
					name = OSMacos
				}
				applies = name == env.Name
			}
			if applies && r.OS.Version != "" {
				applies = find(r.OS.Version, env.Version)
			}
			if applies && r.OS.Arch != "" {
				applies = find(r.OS.Arch, env.Arch)
			}
		}

		if applies {
			allowed = r.Allow()
		}
	}
	return allowed
}

var platformClassifiers = map[string][]string{
	OSWindows: {"natives-windows"},
	OSLinux:   {"natives-linux"},
	OSMacos:   {"natives-macos", "natives-osx"},
}

// NativeClassifier returns the classifier holding the host natives of lib, if any.
// The legacy "natives" map wins over the classifier naming convention.
func NativeClassifier(lib manifests.Library, env Env) (string, bool) {
	if key, ok := lib.Natives[env.Name]; ok {
		return strings.ReplaceAll(key, "${arch}", env.Bits()), true
	}

	for _, k := range platformClassifiers[env.Name] {
		if env.Arch == ArchArm64 {
			if _, ok := lib.Downloads.Classifiers[k+"-arm64"]; ok {
				return k + "-arm64", true
			}
		}
		if _, ok := lib.Downloads.Classifiers[k]; ok {
			return k, true
		}
	}
	return "", false
}

// IsNative reports whether the main artifact of the library is a natives
// jar. A natives map alone says nothing about the main artifact: it may
// carry classes next to its native classifiers.
func IsNative(lib manifests.Library) bool {
	if strings.Contains(lib.Name, ":natives-") {
		return true
	}
	return lib.Downloads.Artifact != nil && strings.Contains(lib.Downloads.Artifact.Path, "-natives-")
}
