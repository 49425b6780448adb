package apt

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"
	"github.com/pkg/errors"
)

// Indexes are the immutable, once-built lookup structures every
// resolution in a run reads from: name -> all known records, and virtual
// name -> all declared providers, plus the single architecture this run
// resolves for.
type Indexes struct {
	PkgsByName     map[string][]*PackageRecord
	ProvidesIndex  map[string][]*PackageRecord
	TargetArch     string
}

var stemPattern = "-binary-"

// BuildIndexes scans every index file in dir (each named
// "<host>-<suite>-<component>-binary-<arch>.txt") and builds the name
// and virtual-name lookup indexes. All files must agree on one target
// architecture; disagreement is fatal, since a closure can only ever be
// resolved for a single architecture per run.
func BuildIndexes(dir string) (*Indexes, error) {
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return nil, &IndexStructuralError{File: dir, Reason: "index directory does not exist"}
	}

	var files []string
	err = godirwalk.Walk(dir, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() || !strings.HasSuffix(path, ".txt") {
				return nil
			}
			files = append(files, path)
			return nil
		},
		Unsorted: false,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scanning index directory %s", dir)
	}
	if len(files) == 0 {
		return nil, &IndexStructuralError{File: dir, Reason: "no index files found"}
	}

	idx := &Indexes{
		PkgsByName:    make(map[string][]*PackageRecord),
		ProvidesIndex: make(map[string][]*PackageRecord),
	}

	for _, path := range files {
		if err := idx.loadFile(path); err != nil {
			return nil, err
		}
	}

	return idx, nil
}

func (idx *Indexes) loadFile(path string) error {
	stem := strings.TrimSuffix(filepath.Base(path), ".txt")

	i := strings.Index(stem, stemPattern)
	if i < 0 {
		return &IndexStructuralError{File: path, Reason: "file name does not match <host>-<suite>-<component>-binary-<arch>.txt"}
	}
	arch := stem[i+len(stemPattern):]
	if arch == "" {
		return &IndexStructuralError{File: path, Reason: "missing architecture suffix"}
	}
	sourceHint := deriveSourceHint(stem[:i], arch)

	if idx.TargetArch == "" {
		idx.TargetArch = arch
	} else if idx.TargetArch != arch {
		return &IndexStructuralError{File: path, Reason: "inconsistent target architecture: saw both " + idx.TargetArch + " and " + arch}
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening index file %s", path)
	}
	defer f.Close()

	stanzas, err := parseStanzas(f)
	if err != nil {
		return errors.Wrapf(err, "parsing index file %s", path)
	}

	for _, st := range stanzas {
		rec, err := recordFromStanza(path, sourceHint, st)
		if err != nil {
			return err
		}
		idx.PkgsByName[rec.Name] = append(idx.PkgsByName[rec.Name], rec)
		for virt := range rec.Provides {
			idx.ProvidesIndex[virt] = append(idx.ProvidesIndex[virt], rec)
		}
	}

	return nil
}

// deriveSourceHint derives "host/suite/component/platform" by
// right-partitioning the stem (minus "-binary-<arch>") on "-": the host
// may itself contain hyphens, so component and suite are peeled off the
// tail and whatever remains is the host.
func deriveSourceHint(prefix, arch string) string {
	parts := strings.Split(prefix, "-")
	if len(parts) < 3 {
		return prefix + "/binary-" + arch
	}
	n := len(parts)
	component := parts[n-1]
	suite := parts[n-2]
	host := strings.Join(parts[:n-2], "-")
	return host + "/" + suite + "/" + component + "/binary-" + arch
}

func recordFromStanza(file, sourceHint string, st *Stanza) (*PackageRecord, error) {
	name, ok := st.Get("Package")
	if !ok || name == "" {
		return nil, &IndexStructuralError{File: file, Reason: "stanza missing mandatory field Package"}
	}
	if !nameRE.MatchString(name) {
		return nil, &IndexStructuralError{File: file, Reason: "stanza has malformed Package name " + quote(name)}
	}
	version, ok := st.Get("Version")
	if !ok || version == "" {
		return nil, &IndexStructuralError{File: file, Reason: "stanza for " + name + " missing mandatory field Version"}
	}
	arch, ok := st.Get("Architecture")
	if !ok || arch == "" {
		return nil, &IndexStructuralError{File: file, Reason: "stanza for " + name + " missing mandatory field Architecture"}
	}
	filename, ok := st.Get("Filename")
	if !ok || filename == "" {
		return nil, &IndexStructuralError{File: file, Reason: "stanza for " + name + " missing mandatory field Filename"}
	}

	dependsRaw, _ := st.Get("Depends")
	preDependsRaw, _ := st.Get("Pre-Depends")
	providesRaw, _ := st.Get("Provides")

	provides, err := parseProvides(name, providesRaw)
	if err != nil {
		return nil, err
	}

	multiArch, _ := st.Get("Multi-Arch")
	priority, _ := st.Get("Priority")

	return &PackageRecord{
		Name:          name,
		Version:       version,
		Arch:          arch,
		Filename:      normalizeFilename(filename),
		DependsRaw:    dependsRaw,
		PreDependsRaw: preDependsRaw,
		Provides:      provides,
		MultiArch:     multiArch,
		Priority:      priority,
		SourceHint:    sourceHint,
	}, nil
}

func normalizeFilename(f string) string {
	f = strings.TrimPrefix(f, "/")
	return strings.ReplaceAll(f, "\\", "/")
}
