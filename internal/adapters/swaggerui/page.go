package swaggerui

// pageTemplate is the single-page viewer. It talks to the JSON API only;
// the widget is mounted from /api/session/spec whenever the state changes.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Swagger Preview</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@{{.Version}}/swagger-ui.css">
  <style>
    body { margin: 0; font-family: sans-serif; }
    .panel { padding: 12px; display: flex; flex-direction: column; gap: 8px; }
    .toolbar { padding: 8px 12px; display: flex; gap: 8px; align-items: center; border-bottom: 1px solid #ddd; }
    .toolbar .title { flex: 1; font-weight: bold; overflow: hidden; text-overflow: ellipsis; white-space: nowrap; }
    textarea { min-height: 160px; font-family: monospace; }
    .hidden { display: none; }
    #toast { position: fixed; bottom: 12px; right: 12px; padding: 8px 12px; border-radius: 4px; color: #fff; }
    #toast.success { background: #2e7d32; }
    #toast.error { background: #c62828; }
    #history li { cursor: pointer; display: flex; justify-content: space-between; }
  </style>
</head>
<body>
  <div id="input-panel" class="panel">
    <input id="url-input" type="text" placeholder="https://example.com/openapi.json">
    <button id="load-url">Load URL</button>
    <textarea id="paste-input" placeholder="Paste an OpenAPI spec (JSON or YAML)"></textarea>
    <button id="load-paste">Render</button>
    <textarea id="selection-input" placeholder="Selected text from the host page"></textarea>
    <button id="load-selection">Render selection</button>
    <input id="server-input" type="text" placeholder="Server override (optional)">
    <h4>Recent</h4>
    <ul id="history"></ul>
    <button id="clear-history">Clear history</button>
  </div>
  <div id="loading" class="panel hidden">Loading...</div>
  <div id="viewer" class="hidden">
    <div class="toolbar">
      <button id="back">Back</button>
      <span id="viewer-title" class="title"></span>
      <input id="viewer-server" type="text" placeholder="Server override">
      <button id="apply-server">Apply</button>
      <button id="reset-server">Reset</button>
    </div>
    <div id="swagger-ui"></div>
  </div>
  <div id="toast" class="hidden"></div>
  <script src="https://unpkg.com/swagger-ui-dist@{{.Version}}/swagger-ui-bundle.js"></script>
  <script src="https://unpkg.com/swagger-ui-dist@{{.Version}}/swagger-ui-standalone-preset.js"></script>
  <script>
  (function () {
    const $ = (id) => document.getElementById(id);
    let mounted = null;

    const api = async (method, path, body) => {
      const res = await fetch(path, {
        method: method,
        headers: body ? { 'Content-Type': 'application/json' } : {},
        body: body ? JSON.stringify(body) : undefined,
      });
      const data = await res.json().catch(() => ({}));
      return { ok: res.ok, status: res.status, data: data, mount: res.headers.get('X-Mount') };
    };

    const toast = (level, message) => {
      const el = $('toast');
      el.textContent = message;
      el.className = level;
      setTimeout(() => { el.className = 'hidden'; }, 3000);
    };

    const overridePlugin = (serverOverride) => () => ({
      statePlugins: { spec: { wrapActions: {
        updateJsonSpec: (ori) => (spec) => {
          if (spec.openapi) {
            spec.servers = [{ url: serverOverride }];
          } else if (spec.swagger) {
            try {
              const u = new URL(serverOverride);
              spec.host = u.host;
              if (u.pathname !== '/') spec.basePath = u.pathname;
              spec.schemes = [u.protocol.replace(':', '')];
            } catch (_) {}
          }
          return ori(spec);
        },
      } } },
    });

    const mount = async () => {
      const res = await api('GET', '/api/session/spec');
      if (!res.ok || res.mount === mounted) return;
      mounted = res.mount;
      const cfg = res.data;
      const opts = {
        dom_id: '#swagger-ui',
        deepLinking: false,
        presets: [SwaggerUIBundle.presets.apis, SwaggerUIStandalonePreset],
        plugins: [SwaggerUIBundle.plugins.DownloadUrl],
        layout: 'BaseLayout',
      };
      if (cfg.spec) opts.spec = cfg.spec;
      if (cfg.url) opts.url = cfg.url;
      if (cfg.url && cfg.serverOverride) opts.plugins.push(overridePlugin(cfg.serverOverride));
      $('swagger-ui').innerHTML = '';
      SwaggerUIBundle(opts);
    };

    const show = async (state) => {
      $('input-panel').classList.toggle('hidden', state.state !== 'input');
      $('loading').classList.toggle('hidden', state.state !== 'loading');
      $('viewer').classList.toggle('hidden', state.state !== 'viewer');
      if (state.state === 'viewer') {
        $('viewer-title').textContent = state.title || '';
        $('viewer-server').value = state.serverOverride || '';
        await mount();
      } else {
        mounted = null;
        $('swagger-ui').innerHTML = '';
        if (state.pendingSelection) $('selection-input').value = state.pendingSelection;
        await loadHistory();
      }
    };

    const loadHistory = async () => {
      const res = await api('GET', '/api/history');
      const list = $('history');
      list.innerHTML = '';
      (res.data.entries || []).forEach((entry) => {
        const li = document.createElement('li');
        const label = document.createElement('span');
        label.textContent = entry.label || entry.rawValue;
        label.onclick = () => act(api('POST', '/api/history/' + entry.createdAt + '/open', { override: $('server-input').value }));
        const remove = document.createElement('button');
        remove.textContent = 'x';
        remove.onclick = async () => { await api('DELETE', '/api/history/' + entry.createdAt); loadHistory(); };
        li.append(label, remove);
        list.append(li);
      });
    };

    const drain = async () => {
      const res = await api('GET', '/api/notifications');
      (res.data.notifications || []).forEach((n) => toast(n.level, n.message));
    };

    const refresh = async () => {
      const res = await api('GET', '/api/state');
      await show(res.data);
      await drain();
    };

    const act = async (pending) => {
      $('input-panel').classList.add('hidden');
      $('loading').classList.remove('hidden');
      await pending;
      await refresh();
    };

    $('load-url').onclick = () => act(api('POST', '/api/import', { kind: 'url', value: $('url-input').value, override: $('server-input').value }));
    $('load-paste').onclick = () => act(api('POST', '/api/import', { kind: 'paste', value: $('paste-input').value, override: $('server-input').value }));
    $('load-selection').onclick = () => act(api('POST', '/api/import', { kind: 'selection', value: $('selection-input').value, override: $('server-input').value }));
    $('back').onclick = () => act(api('DELETE', '/api/session'));
    $('apply-server').onclick = () => act(api('PUT', '/api/session/override', { value: $('viewer-server').value }));
    $('reset-server').onclick = () => act(api('PUT', '/api/session/override', { value: '' }));
    $('clear-history').onclick = async () => { await api('DELETE', '/api/history'); loadHistory(); };

    refresh();
    setInterval(refresh, 2000);
  })();
  </script>
</body>
</html>
`
