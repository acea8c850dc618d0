package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/quire/internal/outline"
	"github.com/spf13/viper"
)

type OutlineSort struct {
	Field string `yaml:"field" json:"field"`
	Order string `yaml:"order" json:"order"`
}

// OutlineConfig is the persisted outliner view. An empty sort field keeps
// binder order.
type OutlineConfig struct {
	Columns []string    `yaml:"columns" json:"columns"`
	Sort    OutlineSort `yaml:"sort"    json:"sort"`
}

type BackupConfig struct {
	Bucket   string `yaml:"bucket"   json:"bucket"`
	Prefix   string `yaml:"prefix"   json:"prefix"`
	Region   string `yaml:"region"   json:"region"`
	Endpoint string `yaml:"endpoint" json:"endpoint"`
}

type Project struct {
	Dir        string            `yaml:"dir"         json:"dir"`
	Editor     string            `yaml:"editor"      json:"editor"`
	EditorArgs string            `yaml:"editor_args" json:"editor_args"`
	Theme      string            `yaml:"theme"       json:"theme"`
	Outline    OutlineConfig     `yaml:"outline"     json:"outline"`
	Labels     map[string]string `yaml:"labels"      json:"labels"`
	Backup     BackupConfig      `yaml:"backup"      json:"backup"`
}

type Config struct {
	Projects       map[string]*Project `yaml:"projects"        json:"projects"`
	CurrentProject string              `yaml:"current_project" json:"current_project"`

	home   string   `yaml:"-"`
	active *Project `yaml:"-"`
}

const (
	defaultProjectName = "default"
	DefaultTheme       = "dark"

	SortAscending  = "ascending"
	SortDescending = "descending"
)

var validEditorNames = []string{"nvim", "vim", "nano", "vscode", "code", "emacs", "hx", "custom"}

var ValidEditors = func() map[string]bool {
	editors := make(map[string]bool, len(validEditorNames))
	for _, editor := range validEditorNames {
		editors[editor] = true
	}

	return editors
}()

// EditorNames lists the supported editors in display order.
func EditorNames() []string {
	return append([]string(nil), validEditorNames...)
}

func ValidateEditor(editor string) error {
	if _, valid := ValidEditors[editor]; valid {
		return nil
	}

	return fmt.Errorf(
		"invalid editor: %q. Please choose from %s.",
		editor,
		quotedList(validEditorNames),
	)
}

var validThemeNames = []string{"dark", "light", "dracula", "notty"}

func ThemeNames() []string {
	return append([]string(nil), validThemeNames...)
}

func ValidateTheme(theme string) error {
	if theme == "" {
		return nil
	}
	for _, name := range validThemeNames {
		if name == theme {
			return nil
		}
	}

	return fmt.Errorf(
		"invalid theme: %q. Please choose from %s.",
		theme,
		quotedList(validThemeNames),
	)
}

func quotedList(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = fmt.Sprintf("'%s'", name)
	}

	if len(quoted) == 0 {
		return ""
	}

	if len(quoted) == 1 {
		return quoted[0]
	}

	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}

// NewProject returns a project rooted at dir with the default outline view.
func NewProject(dir string) *Project {
	p := &Project{Dir: dir}
	p.ensureDefaults()
	return p
}

func (p *Project) ensureDefaults() {
	if p.Labels == nil {
		p.Labels = make(map[string]string)
	}
	if p.Theme == "" {
		p.Theme = DefaultTheme
	}
	if len(p.Outline.Columns) == 0 {
		p.Outline.Columns = outline.ColumnNames(outline.DefaultColumns())
	}
	if p.Outline.Sort.Field != "" && p.Outline.Sort.Order == "" {
		p.Outline.Sort.Order = SortAscending
	}
}

func (p *Project) validate() error {
	if p.Editor != "" {
		if err := ValidateEditor(p.Editor); err != nil {
			return err
		}
	}
	return ValidateTheme(p.Theme)
}

// ViewState converts the persisted outline view for the model. Unknown column
// names are an error so a typo in the file does not silently hide a column.
func (p *Project) ViewState() (outline.ViewState, error) {
	cols, err := outline.ParseColumns(p.Outline.Columns)
	if err != nil {
		return outline.ViewState{}, err
	}
	if len(cols) == 0 {
		cols = outline.DefaultColumns()
	}

	vs := outline.ViewState{Columns: cols, Sort: outline.ColumnTitle, Ascending: true}
	if field := strings.TrimSpace(p.Outline.Sort.Field); field != "" {
		col, err := outline.ParseColumn(field)
		if err != nil {
			return outline.ViewState{}, err
		}
		vs.Sort = col
		vs.Sorted = true
		vs.Ascending = !strings.EqualFold(p.Outline.Sort.Order, SortDescending)
	}
	return vs, nil
}

// OutlineFromState is the inverse of Project.ViewState.
func OutlineFromState(vs outline.ViewState) OutlineConfig {
	oc := OutlineConfig{Columns: outline.ColumnNames(vs.Columns)}
	if vs.Sorted {
		oc.Sort.Field = vs.Sort.String()
		oc.Sort.Order = SortAscending
		if !vs.Ascending {
			oc.Sort.Order = SortDescending
		}
	}
	return oc
}

func Load(home string) (*Config, error) {
	path := GetConfigPath(home)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	cfg.home = home

	if err := cfg.ensureInitialized(); err != nil {
		return nil, err
	}

	p, err := cfg.ActiveProject()
	if err != nil {
		return nil, err
	}

	if err := p.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) ensureInitialized() error {
	if cfg.Projects == nil {
		cfg.Projects = make(map[string]*Project)
	}

	if cfg.CurrentProject == "" {
		if len(cfg.Projects) == 0 {
			cfg.Projects[defaultProjectName] = NewProject("")
			cfg.CurrentProject = defaultProjectName
		} else {
			cfg.CurrentProject = cfg.ProjectNames()[0]
		}
	}

	return cfg.setActiveProject(cfg.CurrentProject)
}

func (cfg *Config) setActiveProject(name string) error {
	if name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	p, ok := cfg.Projects[name]
	if !ok {
		return fmt.Errorf("project %q does not exist", name)
	}
	if p == nil {
		p = NewProject("")
		cfg.Projects[name] = p
	}

	p.ensureDefaults()
	cfg.CurrentProject = name
	cfg.active = p

	cfg.syncViperWithActiveProject()

	return nil
}

func (cfg *Config) syncViperWithActiveProject() {
	if cfg.active == nil {
		return
	}

	syncProjectWithViper(cfg.CurrentProject, cfg.active)
}

func syncProjectWithViper(name string, p *Project) {
	viper.Set("project", name)
	viper.Set("dir", p.Dir)
	viper.Set("editor", p.Editor)
	viper.Set("editor_args", p.EditorArgs)
	viper.Set("theme", p.Theme)
	viper.Set("outline.columns", append([]string(nil), p.Outline.Columns...))
	viper.Set("outline.sort.field", p.Outline.Sort.Field)
	viper.Set("outline.sort.order", p.Outline.Sort.Order)
	viper.Set("backup.bucket", p.Backup.Bucket)
	viper.Set("backup.prefix", p.Backup.Prefix)
	viper.Set("backup.region", p.Backup.Region)
	viper.Set("backup.endpoint", p.Backup.Endpoint)
}

func (cfg *Config) ActiveProject() (*Project, error) {
	if cfg.active != nil {
		return cfg.active, nil
	}

	if cfg.CurrentProject == "" {
		return nil, fmt.Errorf("no project is currently selected")
	}

	if err := cfg.setActiveProject(cfg.CurrentProject); err != nil {
		return nil, err
	}

	return cfg.active, nil
}

func (cfg *Config) MustProject() *Project {
	p, err := cfg.ActiveProject()
	if err != nil {
		panic(err)
	}
	return p
}

func (cfg *Config) ProjectNames() []string {
	names := make([]string, 0, len(cfg.Projects))
	for name := range cfg.Projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SwitchProject makes name the current project and persists the choice.
func (cfg *Config) SwitchProject(name string) error {
	if err := cfg.setActiveProject(name); err != nil {
		return err
	}
	return cfg.Save()
}

// ActivateProject makes name current for this process only.
func (cfg *Config) ActivateProject(name string) error {
	return cfg.setActiveProject(name)
}

func (cfg *Config) AddProject(name string, p *Project, makeCurrent bool) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("project name cannot be empty")
	}

	if cfg.Projects == nil {
		cfg.Projects = make(map[string]*Project)
	}

	if _, exists := cfg.Projects[trimmed]; exists {
		return fmt.Errorf("project %q already exists", trimmed)
	}

	if p == nil {
		p = NewProject("")
	}
	p.ensureDefaults()
	if err := p.validate(); err != nil {
		return err
	}
	cfg.Projects[trimmed] = p

	if cfg.CurrentProject == "" || makeCurrent {
		if err := cfg.setActiveProject(trimmed); err != nil {
			return err
		}
	}

	return cfg.Save()
}

func (cfg *Config) RemoveProject(name string) error {
	if len(cfg.Projects) <= 1 {
		return fmt.Errorf("cannot remove the last project")
	}

	if _, exists := cfg.Projects[name]; !exists {
		return fmt.Errorf("project %q does not exist", name)
	}

	delete(cfg.Projects, name)

	if cfg.CurrentProject == name {
		cfg.active = nil
		cfg.CurrentProject = ""
		if err := cfg.ensureInitialized(); err != nil {
			return err
		}
	}

	return cfg.Save()
}

func (cfg *Config) ChangeEditor(editor string) error {
	if err := ValidateEditor(editor); err != nil {
		return err
	}

	p, err := cfg.ActiveProject()
	if err != nil {
		return err
	}

	p.Editor = editor
	return cfg.Save()
}

func (cfg *Config) ChangeTheme(theme string) error {
	if err := ValidateTheme(theme); err != nil {
		return err
	}

	p, err := cfg.ActiveProject()
	if err != nil {
		return err
	}

	p.Theme = theme
	p.ensureDefaults()
	return cfg.Save()
}

// SetOutline persists the outliner view of the active project. Column and
// field names are validated; an empty field means binder order.
func (cfg *Config) SetOutline(columns []string, field, order string) error {
	cols, err := outline.ParseColumns(columns)
	if err != nil {
		return err
	}

	vs := outline.ViewState{Columns: cols, Sort: outline.ColumnTitle, Ascending: true}
	if len(cols) == 0 {
		vs.Columns = outline.DefaultColumns()
	}

	if field = strings.TrimSpace(field); field != "" {
		col, err := outline.ParseColumn(field)
		if err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(order)) {
		case "", "asc", SortAscending:
			vs.Ascending = true
		case "desc", SortDescending:
			vs.Ascending = false
		default:
			return fmt.Errorf("invalid sort order: %q. Please choose from 'ascending' or 'descending'.", order)
		}
		vs.Sort = col
		vs.Sorted = true
	}

	// Run the state through a model so the stored view obeys the same column
	// rules as the outliner.
	m := outline.New(nil, nil, nil)
	m.ApplyState(vs)
	return cfg.SaveViewState(m.State())
}

// SaveViewState persists a view captured from an outline model.
func (cfg *Config) SaveViewState(vs outline.ViewState) error {
	p, err := cfg.ActiveProject()
	if err != nil {
		return err
	}

	p.Outline = OutlineFromState(vs)
	return cfg.Save()
}

func (cfg *Config) SetLabelColor(name, color string) error {
	p, err := cfg.ActiveProject()
	if err != nil {
		return err
	}

	if p.Labels == nil {
		p.Labels = make(map[string]string)
	}
	if color == "" {
		delete(p.Labels, name)
	} else {
		p.Labels[name] = color
	}
	return cfg.Save()
}

func (cfg *Config) GetConfigPath() string {
	home := cfg.home
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return ""
		}
	}
	return GetConfigPath(home)
}

func (cfg *Config) Save() error {
	p, err := cfg.ActiveProject()
	if err != nil {
		return err
	}

	if err := p.validate(); err != nil {
		return err
	}

	cfg.syncViperWithActiveProject()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	configPath := cfg.GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}
